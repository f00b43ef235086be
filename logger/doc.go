// Package logger is the structured log sink of logproxy.
//
// It wraps go.uber.org/zap behind the Logger interface so that the intercept
// package, and any service it wraps, depend on a capability rather than on
// zap directly. *LoggerClient is the only implementation.
//
// # Direct usage
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "library",
//	})
//	log.Info("service started", nil)
//
// Fields are passed as maps and written in sorted key order:
//
//	log.Error("lend failed", err, map[string]interface{}{
//		"isbn":      isbn,
//		"member_id": memberID,
//	})
//
// # Named loggers
//
// Named returns a child logger tagged with a name, the way the intercept
// binder scopes each proxy's logger to its implementation type:
//
//	users := log.Named("library.DefaultUserService")
//
// # Trace correlation
//
// With EnableTracing set, the *WithContext methods add trace_id and span_id
// taken from the OpenTelemetry span in ctx.
//
// # FX
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Supply(logger.Config{Level: logger.Debug, ServiceName: "library"}),
//	)
package logger
