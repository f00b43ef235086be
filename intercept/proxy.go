package intercept

import (
	"reflect"
	"sync"

	"github.com/aalemi-dev/logproxy/logger"
)

type proxyBuilder func(target interface{}, inv *Interceptor) interface{}

var proxies = struct {
	sync.RWMutex
	table map[reflect.Type]proxyBuilder
}{table: make(map[reflect.Type]proxyBuilder)}

// RegisterProxy registers the forwarding type for interface C. build must
// return a value that forwards every method of C to target through
// inv.Invoke. interceptgen emits the forwarding type and this call.
//
// It panics if C is not an interface, build is nil, or C already has a
// proxy, since all of those are programming errors caught at init.
func RegisterProxy[C any](build func(target C, inv *Interceptor) C) {
	iface := reflect.TypeFor[C]()
	if iface.Kind() != reflect.Interface {
		panic(contractViolation(iface, "proxies can only be registered for interface types"))
	}
	if build == nil {
		panic(contractViolation(iface, "nil proxy builder"))
	}

	proxies.Lock()
	defer proxies.Unlock()

	if _, dup := proxies.table[iface]; dup {
		panic(contractViolation(iface, "proxy registered twice"))
	}
	proxies.table[iface] = func(target interface{}, inv *Interceptor) interface{} {
		return build(target.(C), inv)
	}
}

// Registered reports whether a proxy is registered for interface C.
func Registered[C any]() bool {
	proxies.RLock()
	defer proxies.RUnlock()
	_, ok := proxies.table[reflect.TypeFor[C]()]
	return ok
}

// Create returns a C that forwards every call to target. Calls to operations
// with a Descriptor are logged to log; all others pass straight through.
//
// Create fails with ErrContractViolation if C is not an interface, target or
// log is nil, or no proxy was generated for C.
//
//	users, err := intercept.Create[library.UserService](impl, log.Named("library.DefaultUserService"))
func Create[C any](target C, log logger.Logger, opts ...Option) (C, error) {
	p, err := newProxy(reflect.TypeFor[C](), target, log, opts...)
	if err != nil {
		var zero C
		return zero, err
	}
	return p.(C), nil
}

// MustCreate is Create that panics on error.
func MustCreate[C any](target C, log logger.Logger, opts ...Option) C {
	p, err := Create[C](target, log, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// newProxy is the untyped path shared by Create and the fx binder. target is
// checked against iface at runtime because the binder only knows it as an
// implementation type.
func newProxy(iface reflect.Type, target interface{}, log logger.Logger, opts ...Option) (interface{}, error) {
	if iface.Kind() != reflect.Interface {
		return nil, contractViolation(iface, "capability must be an interface type")
	}
	if isNil(target) {
		return nil, contractViolation(iface, "target is nil")
	}
	if isNil(log) {
		return nil, contractViolation(iface, "logger is nil")
	}
	if missing, ok := missingMethod(reflect.TypeOf(target), iface); !ok {
		return nil, contractViolation(iface, "%s does not implement operation %s", reflect.TypeOf(target), missing)
	}

	proxies.RLock()
	build, ok := proxies.table[iface]
	proxies.RUnlock()
	if !ok {
		return nil, contractViolation(iface, "no proxy registered, run interceptgen for this interface")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.className == "" {
		o.className = className(target)
	}

	inv := &Interceptor{
		iface:     iface,
		ifaceName: typeName(iface),
		className: o.className,
		log:       log,
		observer:  o.observer,
		tracer:    o.tracer,
		cfg:       o.cfg,
	}
	return build(target, inv), nil
}

// missingMethod returns the first method of iface that t lacks.
func missingMethod(t, iface reflect.Type) (string, bool) {
	if t.Implements(iface) {
		return "", true
	}
	for i := 0; i < iface.NumMethod(); i++ {
		m := iface.Method(i)
		tm, ok := t.MethodByName(m.Name)
		if !ok {
			return m.Name, false
		}
		// Method values on a concrete type carry the receiver as first
		// input; compare the remaining signature.
		if !sameSignature(tm.Type, m.Type) {
			return m.Name, false
		}
	}
	return "(unexported method)", false
}

func sameSignature(concrete, ifaceMethod reflect.Type) bool {
	if concrete.NumIn()-1 != ifaceMethod.NumIn() || concrete.NumOut() != ifaceMethod.NumOut() ||
		concrete.IsVariadic() != ifaceMethod.IsVariadic() {
		return false
	}
	for i := 0; i < ifaceMethod.NumIn(); i++ {
		if concrete.In(i+1) != ifaceMethod.In(i) {
			return false
		}
	}
	for i := 0; i < ifaceMethod.NumOut(); i++ {
		if concrete.Out(i) != ifaceMethod.Out(i) {
			return false
		}
	}
	return true
}
