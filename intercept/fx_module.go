package intercept

import (
	"fmt"
	"reflect"

	"go.uber.org/fx"

	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/observability"
	"github.com/aalemi-dev/logproxy/tracer"
)

// Lifetime selects how often an implementation bound with
// ProvideWithLogging is constructed.
type Lifetime int

const (
	// Singleton builds one implementation and one proxy per fx
	// application. Consumers depend on the capability interface C.
	Singleton Lifetime = iota

	// Transient builds a new implementation and proxy on every call of the
	// injected Factory. Consumers depend on Factory[C].
	Transient
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Transient:
		return "transient"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// Factory builds a fresh instance on each call. It is what Transient
// bindings put in the container.
type Factory[T any] func() (T, error)

// BindingParams are the dependencies every binding resolves next to the
// implementation. Only Logger is required.
type BindingParams struct {
	fx.In

	Logger   logger.Logger
	Config   Config                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   tracer.Tracer          `optional:"true"`
}

// ProvideWithLogging binds implementation I to capability C so that every
// consumer resolving C gets a logging proxy around an I.
//
// constructor is an ordinary fx constructor returning I, or (I, error). The
// binding registers two things:
//
//   - Singleton: constructor itself, providing I, and a provider of C that
//     wraps the resolved I.
//   - Transient: a provider of Factory[I] calling constructor on each use,
//     and a provider of Factory[C] wrapping each new I.
//
// The proxy's logger is BindingParams.Logger named after I. I stays
// resolvable directly and is then not instrumented.
//
// A C that is not an interface, an I that does not implement C, or a
// constructor that does not return I fail fx.New with ErrContractViolation.
//
//	fx.New(
//		logger.FXModule,
//		intercept.ProvideWithLogging[library.UserService, *library.DefaultUserService](
//			intercept.Singleton, library.NewUserService),
//	)
func ProvideWithLogging[C any, I any](lifetime Lifetime, constructor interface{}) fx.Option {
	iface := reflect.TypeFor[C]()
	impl := reflect.TypeFor[I]()

	if iface.Kind() != reflect.Interface {
		return fx.Error(contractViolation(iface, "capability must be an interface type"))
	}
	if missing, ok := missingMethod(impl, iface); !ok {
		return fx.Error(contractViolation(iface, "%s does not implement operation %s", impl, missing))
	}
	if err := checkConstructor(iface, impl, constructor); err != nil {
		return fx.Error(err)
	}

	implName := typeName(impl)

	switch lifetime {
	case Singleton:
		return fx.Options(
			fx.Provide(constructor),
			fx.Provide(func(target I, p BindingParams) (C, error) {
				return bind[C](iface, target, implName, p)
			}),
		)

	case Transient:
		return fx.Options(
			fx.Provide(factoryProvider[I](constructor)),
			fx.Provide(func(newTarget Factory[I], p BindingParams) Factory[C] {
				return func() (C, error) {
					target, err := newTarget()
					if err != nil {
						var zero C
						return zero, err
					}
					return bind[C](iface, target, implName, p)
				}
			}),
		)

	default:
		return fx.Error(contractViolation(iface, "unsupported lifetime %s", lifetime))
	}
}

func bind[C any](iface reflect.Type, target interface{}, implName string, p BindingParams) (C, error) {
	opts := []Option{WithConfig(p.Config)}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}

	var log logger.Logger
	if p.Logger != nil {
		log = p.Logger.Named(implName)
	}

	proxy, err := newProxy(iface, target, log, opts...)
	if err != nil {
		var zero C
		return zero, err
	}
	return proxy.(C), nil
}

var errorType = reflect.TypeFor[error]()

func checkConstructor(iface, impl reflect.Type, constructor interface{}) error {
	ct := reflect.TypeOf(constructor)
	if ct == nil || ct.Kind() != reflect.Func {
		return contractViolation(iface, "constructor for %s must be a function, got %v", impl, ct)
	}
	switch {
	case ct.NumOut() == 1 && ct.Out(0) == impl:
	case ct.NumOut() == 2 && ct.Out(0) == impl && ct.Out(1) == errorType:
	default:
		return contractViolation(iface, "constructor %s must return %s or (%s, error)", ct, impl, impl)
	}
	if ct.IsVariadic() {
		return contractViolation(iface, "variadic constructor %s is not supported", ct)
	}
	return nil
}

// factoryProvider turns constructor func(A, B) (I, error) into an fx
// provider func(A, B) Factory[I]. fx resolves A and B once; the factory
// calls constructor with them on every use.
func factoryProvider[I any](constructor interface{}) interface{} {
	cv := reflect.ValueOf(constructor)
	ct := cv.Type()

	in := make([]reflect.Type, ct.NumIn())
	for i := range in {
		in[i] = ct.In(i)
	}
	factoryType := reflect.TypeFor[Factory[I]]()
	providerType := reflect.FuncOf(in, []reflect.Type{factoryType}, false)

	provider := reflect.MakeFunc(providerType, func(args []reflect.Value) []reflect.Value {
		factory := Factory[I](func() (I, error) {
			out := cv.Call(args)
			if len(out) == 2 && !out[1].IsNil() {
				var zero I
				return zero, out[1].Interface().(error)
			}
			target, _ := out[0].Interface().(I)
			return target, nil
		})
		return []reflect.Value{reflect.ValueOf(factory)}
	})
	return provider.Interface()
}
