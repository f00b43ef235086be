package intercept

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrContractViolation is returned when a proxy, descriptor or binding is
// requested for an interface/implementation pair that cannot satisfy it.
// It is only ever returned at construction or registration time, never from
// a proxied call.
var ErrContractViolation = errors.New("intercept: contract violation")

func contractViolation(iface reflect.Type, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrContractViolation, typeName(iface), fmt.Sprintf(format, args...))
}

// PanicError carries a value recovered from a panicking target. It is only
// used for the Error log entry and the observer record; the proxy re-panics
// with the original Value.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns Value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
