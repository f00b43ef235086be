// Package metrics exposes Prometheus metrics for logproxy.
//
// Its main consumer is InvocationObserver, an observability.Observer that
// records every instrumented call seen by an intercept proxy:
//
//	intercepted_calls_total{interface, class, operation, outcome, service}
//	intercepted_call_duration_seconds{interface, class, operation, service}
//
// outcome is one of "success", "error" or "panic".
//
// # Direct usage
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "library"})
//	go m.Server.ListenAndServe()
//
//	svc, err := intercept.Create[library.UserService](impl, log,
//		intercept.WithObserver(metrics.NewInvocationObserver(m)),
//	)
//
// # FX
//
// FXModule adds InvocationObserver to observability.ObserverGroup, so with
// observability.FXModule in the graph every intercept binding records into
// it.
//
//	app := fx.New(
//		logger.FXModule,
//		observability.FXModule,
//		metrics.FXModule,
//		fx.Supply(
//			logger.Config{Level: logger.Info, ServiceName: "library"},
//			metrics.Config{ServiceName: "library"},
//		),
//	)
//
// Applications can register their own metrics through MetricsCollector:
//
//	lends := m.CreateCounter("books_lent_total", "Books lent", []string{"branch"})
//	lends.WithLabelValues("main").Inc()
package metrics
