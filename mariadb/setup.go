package mariadb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aalemi-dev/logproxy/logger"
)

// MariaDB wraps a gorm.DB with connection monitoring, automatic
// reconnection and logged CRUD helpers for MariaDB/MySQL.
//
// The active *gorm.DB lives in an atomic pointer and is swapped on
// reconnection without blocking readers.
type MariaDB struct {
	cfg             Config
	client          atomic.Pointer[gorm.DB]
	logger          logger.Logger
	shutdownSignal  chan struct{}
	retryChanSignal chan error

	closeRetryChanOnce sync.Once
	closeShutdownOnce  sync.Once
}

// NewMariaDB connects to the database described by cfg. It fails when the
// server cannot be reached.
func NewMariaDB(cfg Config) (*MariaDB, error) {
	cfg.ConnectionDetails = cfg.ConnectionDetails.withDefaults()

	conn, err := connectToMariaDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("error in connecting to MariaDB: %w", err)
	}

	db := &MariaDB{
		cfg:             cfg,
		shutdownSignal:  make(chan struct{}),
		retryChanSignal: make(chan error, 1),
	}
	db.client.Store(conn)
	return db, nil
}

// connectToMariaDB opens a GORM connection with error translation enabled
// and applies the pool settings. Opening queries the server version, so an
// unreachable server fails here.
func connectToMariaDB(cfg Config) (*gorm.DB, error) {
	dsn, err := cfg.Connection.DSN()
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(
		gormmysql.Open(dsn),
		&gorm.Config{
			TranslateError: true,
			Logger:         gormlogger.Discard,
		})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MariaDB/MySQL database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get MariaDB/MySQL database instance: %w", err)
	}

	details := cfg.ConnectionDetails.withDefaults()
	sqlDB.SetMaxOpenConns(details.MaxOpenConns)
	sqlDB.SetMaxIdleConns(details.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(details.ConnMaxLifetime)

	return database, nil
}

// RetryConnection waits for failure signals from MonitorConnection and
// reconnects until it succeeds, the context ends or the client shuts down.
func (m *MariaDB) RetryConnection(ctx context.Context) {
outerLoop:
	for {
		select {
		case <-m.shutdownSignal:
			m.logInfo(ctx, "Stopping RetryConnection loop due to shutdown signal", nil)
			return
		case <-ctx.Done():
			return
		case _, ok := <-m.retryChanSignal:
			if !ok {
				return
			}
		innerLoop:
			for {
				select {
				case <-m.shutdownSignal:
					return
				case <-ctx.Done():
					return
				default:
					newConn, err := connectToMariaDB(m.cfg)
					if err != nil {
						m.logError(ctx, "MariaDB reconnection failed", err, nil)
						time.Sleep(time.Second)
						continue innerLoop
					}
					closeGorm(m.client.Swap(newConn))
					m.logInfo(ctx, "Successfully reconnected to MariaDB/MySQL database", nil)
					continue outerLoop
				}
			}
		}
	}
}

// MonitorConnection pings the database every HealthCheckInterval and
// signals RetryConnection on failure.
func (m *MariaDB) MonitorConnection(ctx context.Context) {
	defer m.closeRetryChanOnce.Do(func() {
		close(m.retryChanSignal)
	})

	ticker := time.NewTicker(m.cfg.ConnectionDetails.withDefaults().HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.shutdownSignal:
			m.logInfo(ctx, "Stopping MonitorConnection loop due to shutdown signal", nil)
			return
		case <-ticker.C:
			if err := m.healthCheck(); err != nil {
				m.logWarn(ctx, "MariaDB health check failed", err, nil)
				select {
				case m.retryChanSignal <- err:
				default:
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *MariaDB) healthCheck() error {
	dbConn := m.DB()
	if dbConn == nil {
		return fmt.Errorf("database client is not initialized")
	}

	db, err := dbConn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance during health check: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}

// WithLogger attaches a logger for lifecycle events and operation logs.
func (m *MariaDB) WithLogger(log logger.Logger) *MariaDB {
	m.logger = log
	return m
}

// GracefulShutdown stops the monitoring goroutines and closes the pool.
// Calling it again is a no-op.
func (m *MariaDB) GracefulShutdown() error {
	if m.shutdownSignal != nil {
		m.closeShutdownOnce.Do(func() {
			close(m.shutdownSignal)
		})
	}
	return closeGorm(m.DB())
}

func closeGorm(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (m *MariaDB) logInfo(ctx context.Context, msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.InfoWithContext(ctx, msg, nil, fields)
	}
}

func (m *MariaDB) logWarn(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.WarnWithContext(ctx, msg, err, fields)
	}
}

func (m *MariaDB) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.ErrorWithContext(ctx, msg, err, fields)
	}
}
