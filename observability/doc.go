// Package observability defines the hook through which the intercept package
// reports completed invocations to metrics, audit or test collectors.
//
// The hook is optional. A proxy built without an Observer still writes its
// Before/After/Error log entries; the Observer only adds a structured,
// per-call InvocationRecord on top.
//
//	type auditObserver struct{ out chan<- observability.InvocationRecord }
//
//	func (a auditObserver) ObserveInvocation(rec observability.InvocationRecord) {
//		a.out <- rec
//	}
//
//	svc, err := intercept.Create[library.UserService](impl, log,
//		intercept.WithObserver(observability.Multi{
//			metricsObserver,
//			auditObserver{out: ch},
//		}),
//	)
//
// metrics.InvocationObserver records Prometheus metrics and
// kafka.AuditObserver publishes each record to a topic.
//
// # FX
//
// Modules contribute observers to the ObserverGroup value group; FXModule
// combines them into the one Observer that intercept bindings receive:
//
//	app := fx.New(
//		observability.FXModule,
//		metrics.FXModule, // adds *metrics.InvocationObserver
//		kafka.FXModule,   // adds *kafka.AuditObserver
//		...
//	)
package observability
