package observability

import "time"

// Observer receives one InvocationRecord for every instrumented call that
// completes, successfully or not. Calls without an instrumentation
// descriptor are never observed.
//
// Implementations are called synchronously on the caller's goroutine and
// must be safe for concurrent use.
type Observer interface {
	ObserveInvocation(rec InvocationRecord)
}

// Outcome classifies how an invocation ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomePanic   Outcome = "panic"
)

// InvocationRecord describes a single intercepted call. It is built per
// call, handed to the log sink and the Observer, then dropped.
type InvocationRecord struct {
	// ID is unique per call and appears as call_id on every log entry of
	// the call.
	ID string

	// Interface is the capability interface the call went through,
	// e.g. "library.UserService".
	Interface string

	// ClassName is the concrete type name of the wrapped target,
	// e.g. "DefaultUserService".
	ClassName string

	// Operation is the invoked method name.
	Operation string

	// Message is the descriptor message, defaulting to Operation.
	Message string

	// Arguments holds the rendered arguments in call order.
	Arguments []string

	StartTime time.Time
	Duration  time.Duration

	// Result is the rendered return value, "void" when the method returns
	// nothing besides an error. Empty on failure.
	Result string

	// Err is the error returned by the target, or the panic value wrapped
	// as an error when Panicked is set.
	Err error

	Panicked bool
}

// Outcome reports how the invocation ended.
func (r InvocationRecord) Outcome() Outcome {
	switch {
	case r.Panicked:
		return OutcomePanic
	case r.Err != nil:
		return OutcomeError
	default:
		return OutcomeSuccess
	}
}
