// Package library is a small user and book lending domain wired through
// intercept. It backs the librarydemo command and the end-to-end tests.
//
// UserService is bound as a singleton, BookCatalog as a transient, both with
// intercept.ProvideWithLogging. Their proxies are generated by interceptgen
// into *_intercept.go.
package library
