package intercept

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/observability"
	"github.com/aalemi-dev/logproxy/tracer"
)

// Interceptor is the dispatch core shared by every generated proxy. It is
// created by Create and holds only references fixed at construction, so one
// Interceptor serves any number of concurrent calls.
type Interceptor struct {
	iface     reflect.Type
	ifaceName string
	className string

	log      logger.Logger
	observer observability.Observer
	tracer   tracer.Tracer
	cfg      Config
}

// Invoke runs one intercepted call. args are the original arguments, used
// only for rendering; call performs the forwarded call on the target and
// returns its non-error results and its error.
//
// Without a descriptor for operation, Invoke runs call and returns its
// error untouched. With one, it writes an "invocation started" Info entry,
// runs call, then writes either an "invocation completed" Info entry or an
// "invocation failed" Error entry. The returned error is always the exact
// value call returned. A panic in call is logged as a failure and re-raised
// with the same value.
func (in *Interceptor) Invoke(operation string, args []interface{}, call func() ([]interface{}, error)) error {
	desc, ok := Lookup(in.iface, operation)
	if !ok {
		_, err := call()
		return err
	}
	return in.instrument(desc, args, call)
}

func (in *Interceptor) instrument(desc Descriptor, args []interface{}, call func() ([]interface{}, error)) error {
	ctx := contextFrom(args)
	rec := observability.InvocationRecord{
		ID:        uuid.NewString(),
		Interface: in.ifaceName,
		ClassName: in.className,
		Operation: desc.Operation,
		Message:   desc.DisplayMessage(),
		Arguments: in.renderArguments(args),
	}

	in.log.InfoWithContext(ctx, MessageStarted, nil, map[string]interface{}{
		"call_id": rec.ID,
		"class":   rec.ClassName,
		"method":  rec.Operation,
		"message": rec.Message,
		"args":    joinArguments(rec.Arguments),
	})

	var span tracer.Span
	if in.tracer != nil {
		ctx, span = in.tracer.StartSpan(ctx, rec.ClassName+"."+rec.Operation)
		span.SetAttributes(map[string]interface{}{
			"call_id":   rec.ID,
			"interface": rec.Interface,
			"class":     rec.ClassName,
			"method":    rec.Operation,
		})
	}

	rec.StartTime = time.Now()
	returned := false
	defer func() {
		if returned {
			return
		}
		r := recover()
		if r == nil {
			// runtime.Goexit: nothing to log, let it unwind.
			if span != nil {
				span.End()
			}
			return
		}
		rec.Duration = time.Since(rec.StartTime)
		rec.Err = &PanicError{Value: r}
		rec.Panicked = true
		in.fail(ctx, span, rec)
		panic(r)
	}()

	results, err := call()
	rec.Duration = time.Since(rec.StartTime)
	returned = true

	if err != nil {
		rec.Err = err
		in.fail(ctx, span, rec)
		return err
	}

	rec.Result = in.renderResults(results)
	in.log.InfoWithContext(ctx, MessageCompleted, nil, map[string]interface{}{
		"call_id":     rec.ID,
		"class":       rec.ClassName,
		"method":      rec.Operation,
		"duration_ms": rec.Duration.Milliseconds(),
		"result":      rec.Result,
	})
	in.finish(span, rec)
	return nil
}

func (in *Interceptor) fail(ctx context.Context, span tracer.Span, rec observability.InvocationRecord) {
	fields := map[string]interface{}{
		"call_id":     rec.ID,
		"class":       rec.ClassName,
		"method":      rec.Operation,
		"duration_ms": rec.Duration.Milliseconds(),
	}
	if rec.Panicked {
		fields["panic"] = true
	}
	in.log.ErrorWithContext(ctx, MessageFailed, rec.Err, fields)

	if span != nil {
		span.RecordError(rec.Err)
	}
	in.finish(span, rec)
}

func (in *Interceptor) finish(span tracer.Span, rec observability.InvocationRecord) {
	if span != nil {
		span.SetAttributes(map[string]interface{}{
			"duration_ms": rec.Duration.Milliseconds(),
			"outcome":     string(rec.Outcome()),
		})
		span.End()
	}
	if in.observer != nil {
		in.observer.ObserveInvocation(rec)
	}
}
