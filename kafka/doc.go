// Package kafka publishes invocation records to Apache Kafka.
//
// A Producer wraps a segmentio/kafka-go Writer bound to a single topic.
// AuditObserver turns each observability.InvocationRecord into an
// InvocationEvent and publishes it keyed by the call_id, with the interface,
// method and outcome as message headers. Consumers of the topic can
// correlate events with log entries through that call_id.
//
// # Architecture
//
//   - Publisher interface: what AuditObserver depends on
//   - Producer struct: the kafka-go backed implementation
//   - Serializer / Deserializer: value encoding, JSON by default
//
// Write failures are translated onto the package sentinels (ErrTimeout,
// ErrConnectionFailed, ...) by TranslateError, with the original error kept
// in the chain. The observer logs them at Warn; they never reach the caller
// of the proxied method. AuditObserver publishes from its own goroutine
// through a bounded queue, so instrumented calls do not wait on the broker;
// Close drains the queue.
//
// # Basic Usage
//
//	producer, err := kafka.NewProducer(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "library.invocations",
//	}, log)
//	if err != nil {
//		return err
//	}
//	defer producer.Close()
//
//	audit := kafka.NewAuditObserver(producer, log, 0, 0)
//	defer audit.Close(context.Background())
//
//	users, err := intercept.Create[library.UserService](svc, log,
//		intercept.WithObserver(audit),
//	)
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		observability.FXModule,
//		kafka.FXModule,
//		fx.Supply(kafka.Config{Brokers: brokers, Topic: topic}),
//	)
package kafka
