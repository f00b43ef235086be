package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Client is the database interface repositories depend on. *Postgres
// implements it; tests substitute a fake.
//
// CRUD methods return raw GORM and driver errors. Use TranslateError to map
// them onto the package sentinels (ErrRecordNotFound, ErrDuplicateKey, ...).
type Client interface {
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Create(ctx context.Context, value interface{}) error
	Save(ctx context.Context, value interface{}) error
	Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error)
	Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error)
	Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)

	// AutoMigrate creates or alters the tables of the given models.
	AutoMigrate(ctx context.Context, models ...interface{}) error

	// Transaction runs fn in a transaction, committing when fn returns nil.
	// The callback receives a Client bound to the transaction.
	Transaction(ctx context.Context, fn func(tx Client) error) error

	// DB gives raw GORM access.
	DB() *gorm.DB

	TranslateError(err error) error
	IsRetryable(err error) bool

	GracefulShutdown() error
}

var _ Client = (*Postgres)(nil)
