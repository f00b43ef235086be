package store

import "time"

type Versioned interface {
	Version() (int, time.Time)
}
