// Package intercept wraps capability interfaces in logging proxies.
//
// A proxy implements the same interface as the value it wraps and forwards
// every call to it. Calls to operations marked with a Descriptor are logged
// around the forwarded call; all other operations pass straight through
// without any log entry. Arguments, results and errors are never altered.
//
// # Marking operations
//
// Operations are marked with an //intercept:log comment on the interface
// method, optionally followed by a quoted message:
//
//	//go:generate go run github.com/aalemi-dev/logproxy/cmd/interceptgen -type UserService
//
//	type UserService interface {
//		//intercept:log "listing users"
//		ListUsers(ctx context.Context) ([]User, error)
//
//		//intercept:log
//		CreateUser(ctx context.Context, name, email string) (User, error)
//
//		UserExists(ctx context.Context, id int) (bool, error)
//	}
//
// interceptgen writes the forwarding type and an init function that calls
// RegisterProxy and MustDescribe. Describe can also be called by hand for
// interfaces whose proxy is registered without the generator.
//
// # Log entries
//
// Each instrumented call writes two entries sharing a call_id:
//
//   - "invocation started" at Info, with class, method, message and args.
//   - "invocation completed" at Info, with class, method, duration_ms and
//     result, or "invocation failed" at Error, with class, method,
//     duration_ms and error.
//
// nil values, nil maps and slices included, render as "null", an empty
// argument list as "none" and a method without results as "void". A
// panicking target produces a failed entry with panic=true and the panic
// continues with the original value.
//
// # Creating proxies
//
//	users, err := intercept.Create[library.UserService](impl, log,
//		intercept.WithTracer(tr),
//		intercept.WithObserver(metricsObserver),
//	)
//
// # FX
//
// ProvideWithLogging binds an implementation to its capability so consumers
// only ever receive the proxy:
//
//	app := fx.New(
//		logger.FXModule,
//		intercept.ProvideWithLogging[library.UserService, *library.DefaultUserService](
//			intercept.Singleton, library.NewUserService),
//		intercept.ProvideWithLogging[library.BookCatalog, *library.ShelfCatalog](
//			intercept.Transient, library.NewBookCatalog),
//	)
//
// Transient bindings are consumed as intercept.Factory[C].
package intercept
