package intercept_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

//go:generate go run github.com/aalemi-dev/logproxy/cmd/interceptgen -type Fetcher -output fetcher_intercept_test.go

// Record is a value type returned by Fetcher.Lookup.
type Record struct {
	ID   int
	Name string
}

func (r Record) String() string {
	return fmt.Sprintf("record#%d(%s)", r.ID, r.Name)
}

// Fetcher exercises every method shape the generator supports.
type Fetcher interface {
	//intercept:log "fetching a record"
	Fetch(ctx context.Context, id int) (string, error)

	Ping() string

	//intercept:log
	Store(key string, values ...int) error

	//intercept:log
	Reset()

	//intercept:log "looking up"
	Lookup(id int) (*Record, bool)

	//intercept:log
	Explode(msg string) error
}

var errNotFound = errors.New("record not found")

type wrappedError struct {
	op    string
	cause error
}

func (e *wrappedError) Error() string { return e.op + ": " + e.cause.Error() }
func (e *wrappedError) Unwrap() error { return e.cause }

type fakeFetcher struct {
	calls  atomic.Int32
	resets atomic.Int32
	fail   error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{}
}

// Fetch sleeps id milliseconds, then returns "ok", or fails for negative ids.
func (f *fakeFetcher) Fetch(ctx context.Context, id int) (string, error) {
	f.calls.Add(1)
	if id < 0 {
		return "", &wrappedError{op: "fetch", cause: errNotFound}
	}
	if f.fail != nil {
		return "", f.fail
	}
	select {
	case <-time.After(time.Duration(id) * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "ok", nil
}

func (f *fakeFetcher) Ping() string {
	f.calls.Add(1)
	return "pong"
}

func (f *fakeFetcher) Store(key string, values ...int) error {
	f.calls.Add(1)
	if len(values) == 0 {
		return fmt.Errorf("store %s: no values", key)
	}
	return nil
}

func (f *fakeFetcher) Reset() {
	f.resets.Add(1)
}

func (f *fakeFetcher) Lookup(id int) (*Record, bool) {
	if id == 0 {
		return nil, false
	}
	return &Record{ID: id, Name: "alpha"}, true
}

func (f *fakeFetcher) Explode(msg string) error {
	panic(msg)
}
