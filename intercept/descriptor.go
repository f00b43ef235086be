package intercept

import (
	"reflect"
	"sync"
)

// Descriptor marks one operation of a capability interface for logging.
// Operations without a Descriptor are forwarded without any log entry.
//
// Descriptors are normally declared with an //intercept:log comment on the
// interface method and registered by code generated with interceptgen.
type Descriptor struct {
	// Operation is the method name.
	Operation string

	// Message is a human description written on the "invocation started"
	// entry. Empty means the operation name.
	Message string
}

// DisplayMessage returns Message, or Operation when Message is empty.
func (d Descriptor) DisplayMessage() string {
	if d.Message == "" {
		return d.Operation
	}
	return d.Message
}

type descriptorKey struct {
	iface     reflect.Type
	operation string
}

var descriptors = struct {
	sync.RWMutex
	table map[descriptorKey]Descriptor
}{table: make(map[descriptorKey]Descriptor)}

// Describe registers descriptors for the operations of interface C.
//
// It fails with ErrContractViolation when C is not an interface, when an
// operation is not a method of C, or when an operation is already
// described. Nothing is registered if any descriptor is rejected.
func Describe[C any](descs ...Descriptor) error {
	iface := reflect.TypeFor[C]()
	if iface.Kind() != reflect.Interface {
		return contractViolation(iface, "descriptors can only be attached to interface types")
	}

	descriptors.Lock()
	defer descriptors.Unlock()

	seen := make(map[string]struct{}, len(descs))
	for _, d := range descs {
		if _, ok := iface.MethodByName(d.Operation); !ok {
			return contractViolation(iface, "no operation named %q", d.Operation)
		}
		if _, dup := seen[d.Operation]; dup {
			return contractViolation(iface, "operation %q described twice", d.Operation)
		}
		if _, dup := descriptors.table[descriptorKey{iface, d.Operation}]; dup {
			return contractViolation(iface, "operation %q described twice", d.Operation)
		}
		seen[d.Operation] = struct{}{}
	}

	for _, d := range descs {
		descriptors.table[descriptorKey{iface, d.Operation}] = d
	}
	return nil
}

// MustDescribe is Describe that panics on error. Generated code calls it
// from init.
func MustDescribe[C any](descs ...Descriptor) {
	if err := Describe[C](descs...); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor of operation on iface, if any. It depends
// only on registered metadata, never on call arguments.
func Lookup(iface reflect.Type, operation string) (Descriptor, bool) {
	descriptors.RLock()
	d, ok := descriptors.table[descriptorKey{iface, operation}]
	descriptors.RUnlock()
	return d, ok
}

// LookupFor is Lookup for interface C.
func LookupFor[C any](operation string) (Descriptor, bool) {
	return Lookup(reflect.TypeFor[C](), operation)
}
