package tracer

import (
	"context"
)

// Tracer starts spans. *TracerClient implements it.
type Tracer interface {
	// StartSpan starts a child of the span in ctx, or a root span when ctx
	// has none.
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span is a started span.
type Span interface {
	End()

	// SetAttributes records attributes. Strings, ints, int64s, float64s and
	// bools keep their type; anything else is stored via fmt.Sprint.
	SetAttributes(attrs map[string]interface{})

	// RecordError records err as an event and marks the span failed.
	RecordError(err error)
}
