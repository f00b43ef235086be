package mariadb

import (
	"context"

	"gorm.io/gorm"
)

// Client is the database interface repositories depend on. *MariaDB
// implements it.
//
// Methods return raw GORM and driver errors; TranslateError maps them onto
// the package sentinels.
type Client interface {
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Create(ctx context.Context, value interface{}) error
	Save(ctx context.Context, value interface{}) error
	Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error)
	Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error)
	Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)
	AutoMigrate(ctx context.Context, models ...interface{}) error

	// Transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Client) error) error

	DB() *gorm.DB
	TranslateError(err error) error
	IsRetryable(err error) bool
	GracefulShutdown() error
}

var _ Client = (*MariaDB)(nil)
