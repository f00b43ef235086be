// Package store declares interfaces that embed interfaces from other files
// and packages.
package store

import (
	"context"
	"io"

	"github.com/json-iterator/go"

	"github.com/aalemi-dev/logproxy/tracer"
)

type Reader interface {
	//intercept:log "reading"
	Get(ctx context.Context, key string) ([]byte, error)
}

type Store interface {
	io.Closer
	Reader
	tracer.Tracer
	Versioned

	//intercept:log
	Put(ctx context.Context, key string, value []byte) error

	Codec() jsoniter.API
}
