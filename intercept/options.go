package intercept

import (
	"github.com/aalemi-dev/logproxy/observability"
	"github.com/aalemi-dev/logproxy/tracer"
)

// Option customizes a proxy built by Create.
type Option func(*options)

type options struct {
	cfg       Config
	observer  observability.Observer
	tracer    tracer.Tracer
	className string
}

// WithConfig sets the rendering configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithObserver reports every instrumented call to obs once it completes.
func WithObserver(obs observability.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithTracer opens one span per instrumented call.
func WithTracer(t tracer.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithClassName overrides the class name written on log entries, which
// defaults to the target's concrete type name.
func WithClassName(name string) Option {
	return func(o *options) {
		o.className = name
	}
}
