package mariadb

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/aalemi-dev/logproxy/logger"
)

// FXModule provides *MariaDB and the Client interface and runs connection
// monitoring for the lifetime of the application.
//
// Requires a mariadb.Config and a logger.Logger in the container.
//
//	app := fx.New(
//	    logger.FXModule,
//	    mariadb.FXModule,
//	    fx.Supply(mariadb.Config{...}),
//	)
var FXModule = fx.Module("mariadb",
	fx.Provide(
		NewMariaDBClientWithDI,
		ProvideClient,
	),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// ProvideClient exposes *MariaDB as Client.
func ProvideClient(db *MariaDB) Client {
	return db
}

// MariaDBParams groups the dependencies needed to create a MariaDB client.
type MariaDBParams struct {
	fx.In

	Config Config
	Logger logger.Logger
}

// NewMariaDBClientWithDI connects using the injected Config and attaches a
// "mariadb" child of the injected logger.
func NewMariaDBClientWithDI(params MariaDBParams) (*MariaDB, error) {
	client, err := NewMariaDB(params.Config)
	if err != nil {
		return nil, err
	}
	return client.WithLogger(params.Logger.Named("mariadb")), nil
}

// MariaDBLifeCycleParams groups the dependencies for lifecycle management.
type MariaDBLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	MariaDB   *MariaDB
}

// RegisterMariaDBLifecycle starts MonitorConnection and RetryConnection on
// start, and on stop waits for both before closing the pool.
func RegisterMariaDBLifecycle(params MariaDBLifeCycleParams) {
	wg := &sync.WaitGroup{}
	loopCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			wg.Add(2)
			go func() {
				defer wg.Done()
				params.MariaDB.MonitorConnection(loopCtx)
			}()
			go func() {
				defer wg.Done()
				params.MariaDB.RetryConnection(loopCtx)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.MariaDB.closeShutdownOnce.Do(func() {
				close(params.MariaDB.shutdownSignal)
			})
			cancel()
			wg.Wait()
			return params.MariaDB.GracefulShutdown()
		},
	})
}
