package metrics

import (
	"github.com/aalemi-dev/logproxy/observability"
)

// Metric names recorded by InvocationObserver.
const (
	InvocationsTotalName   = "intercepted_calls_total"
	InvocationDurationName = "intercepted_call_duration_seconds"
)

// DurationBuckets are the histogram buckets, in seconds, used for
// intercepted call latency.
var DurationBuckets = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// InvocationObserver turns invocation records into Prometheus metrics:
// a call counter labeled with the outcome and a latency histogram.
type InvocationObserver struct {
	calls    Counter
	duration Histogram
}

// NewInvocationObserver registers the invocation metrics on m.
// It must be called once per collector.
func NewInvocationObserver(m MetricsCollector) *InvocationObserver {
	return &InvocationObserver{
		calls: m.CreateCounter(
			InvocationsTotalName,
			"Instrumented calls that went through a logging proxy, by outcome.",
			[]string{"interface", "class", "operation", "outcome"},
		),
		duration: m.CreateHistogram(
			InvocationDurationName,
			"Latency of instrumented calls, measured by the logging proxy.",
			[]string{"interface", "class", "operation"},
			DurationBuckets,
		),
	}
}

// ObserveInvocation implements observability.Observer.
func (o *InvocationObserver) ObserveInvocation(rec observability.InvocationRecord) {
	o.calls.WithLabelValues(rec.Interface, rec.ClassName, rec.Operation, string(rec.Outcome())).Inc()
	o.duration.WithLabelValues(rec.Interface, rec.ClassName, rec.Operation).Observe(rec.Duration.Seconds())
}

var _ observability.Observer = (*InvocationObserver)(nil)
