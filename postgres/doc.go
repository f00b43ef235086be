// Package postgres provides a PostgreSQL client built on top of GORM.
//
// The package exposes a small interface (Client) and a concrete
// implementation (*Postgres) wrapping a *gorm.DB. It adds:
//   - Connection establishment and pool configuration
//   - Periodic health checks and automatic reconnection (MonitorConnection
//     and RetryConnection)
//   - CRUD helpers that log each operation at Debug through logger.Logger
//   - Error normalization (TranslateError) over GORM errors and SQLSTATE codes
//
// # Concurrency model
//
// The active *gorm.DB is stored in an atomic.Pointer. Operations load the
// pointer and run without holding package-level locks; reconnection swaps it.
//
// # Basic usage
//
//	pg, err := postgres.NewPostgres(postgres.Config{
//	    Connection: postgres.Connection{
//	        Host:     "localhost",
//	        Port:     "5432",
//	        User:     "library",
//	        Password: "secret",
//	        DbName:   "library",
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pg.GracefulShutdown()
//
//	var rows []userRecord
//	if err := pg.Find(ctx, &rows); err != nil {
//	    return postgres.TranslateError(err)
//	}
//
// # Fx integration
//
// FXModule constructs *Postgres, exposes it as Client and registers the
// monitoring goroutines with the application lifecycle.
package postgres
