package library

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"github.com/aalemi-dev/logproxy/intercept"
	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/mariadb"
	"github.com/aalemi-dev/logproxy/postgres"
)

// FXModule provides the library capabilities. Consumers depend on
// UserService and intercept.Factory[BookCatalog]; both hand out logging
// proxies. Requires a logger.Logger in the container; a Config, a
// postgres.Client and a mariadb.Client are optional.
var FXModule = fx.Module("library",
	fx.Provide(
		NewUserRepositoryWithDI,
		NewShelf,
	),
	intercept.ProvideWithLogging[UserService, *DefaultUserService](intercept.Singleton, NewUserService),
	intercept.ProvideWithLogging[BookCatalog, *ShelfCatalog](intercept.Transient, NewBookCatalog),
)

// RepositoryParams groups the dependencies of the user repository.
type RepositoryParams struct {
	fx.In

	Config   Config          `optional:"true"`
	Logger   logger.Logger
	Postgres postgres.Client `optional:"true"`
	MariaDB  mariadb.Client  `optional:"true"`
}

// NewUserRepositoryWithDI returns the repository selected by Config.Storage.
func NewUserRepositoryWithDI(p RepositoryParams) (UserRepository, error) {
	switch p.Config.Storage {
	case "", StorageMemory:
		return NewUserRepository(p.Logger), nil
	case StoragePostgres:
		if p.Postgres == nil {
			return nil, fmt.Errorf("%w: %q requires postgres.FXModule", ErrUnknownStorage, p.Config.Storage)
		}
		return NewPostgresUserRepository(context.Background(), p.Postgres, p.Logger)
	case StorageMariaDB:
		if p.MariaDB == nil {
			return nil, fmt.Errorf("%w: %q requires mariadb.FXModule", ErrUnknownStorage, p.Config.Storage)
		}
		return NewMariaDBUserRepository(context.Background(), p.MariaDB, p.Logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, p.Config.Storage)
	}
}
