package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/observability"
)

// FXModule provides the audit producer and contributes an AuditObserver to
// observability.ObserverGroup, so every proxied call bound through
// intercept.ProvideWithLogging is also published to Kafka.
//
// The module provides:
//  1. *Producer and the Publisher interface
//  2. *AuditObserver, also added to observability.ObserverGroup
//  3. A stop hook that drains the audit queue, then closes the producer
//
// Requires a kafka.Config and a logger.Logger in the container.
//
//	app := fx.New(
//	    logger.FXModule,
//	    observability.FXModule,
//	    kafka.FXModule,
//	    fx.Supply(kafka.Config{Brokers: []string{"localhost:9092"}, Topic: "library.invocations"}),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewProducerWithDI,
		fx.Annotate(
			NewPublisherWithDI,
			fx.As(new(Publisher)),
		),
		NewAuditObserverWithDI,
		fx.Annotate(
			func(a *AuditObserver) observability.Observer { return a },
			fx.ResultTags(observability.ObserverGroup),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Producer.
type KafkaParams struct {
	fx.In

	Config     Config
	Logger     logger.Logger
	Serializer Serializer `optional:"true"`
}

// NewProducerWithDI builds a Producer from injected dependencies. A
// Serializer in the container replaces the default JSONSerializer.
func NewProducerWithDI(params KafkaParams) (*Producer, error) {
	p, err := NewProducer(params.Config, params.Logger.Named("kafka"))
	if err != nil {
		return nil, err
	}
	if params.Serializer != nil {
		p.WithSerializer(params.Serializer)
	}
	return p, nil
}

// NewPublisherWithDI exposes the container's *Producer; FXModule binds it
// to Publisher.
func NewPublisherWithDI(p *Producer) *Producer {
	return p
}

// NewAuditObserverWithDI builds the AuditObserver on top of the provided
// Publisher, bounded by the configured write timeout and queue size.
func NewAuditObserverWithDI(p Publisher, cfg Config, log logger.Logger) *AuditObserver {
	return NewAuditObserver(p, log.Named("kafka.audit"), cfg.WriteTimeout, cfg.AuditQueueSize)
}

// RegisterKafkaLifecycle drains the audit observer and closes the producer
// when the application stops.
func RegisterKafkaLifecycle(lc fx.Lifecycle, p *Producer, audit *AuditObserver, log logger.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := audit.Close(ctx); err != nil {
				log.Warn("Audit queue not drained", err, map[string]interface{}{
					"dropped": audit.Dropped(),
				})
			}
			log.Info("Closing Kafka producer", nil, map[string]interface{}{
				"topic": p.cfg.Topic,
			})
			return p.Close()
		},
	})
}
