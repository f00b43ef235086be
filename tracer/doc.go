// Package tracer wraps the OpenTelemetry SDK behind a two-method Tracer
// interface.
//
// Proxies created by the intercept package use it to open one span per
// instrumented call, named "<Class>.<Operation>", with the call_id, class and
// method as attributes and the target's error recorded on failure. The
// logger package reads the same span context to stamp trace_id and span_id
// on log entries.
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "library", AppEnv: "dev"})
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	ctx, span := tr.StartSpan(ctx, "import-catalog")
//	defer span.End()
package tracer
