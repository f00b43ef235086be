package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/logproxy/internal/library"
	"github.com/aalemi-dev/logproxy/kafka"
	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/mariadb"
	"github.com/aalemi-dev/logproxy/postgres"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, logger.Info, cfg.Logger.Level)
	require.NotNil(t, cfg.Metrics.Address)
	assert.Empty(t, *cfg.Metrics.Address)
}

func TestLoadConfig_File(t *testing.T) {
	cfg, err := loadConfig("config.example.yaml")
	require.NoError(t, err)
	assert.Equal(t, logger.Debug, cfg.Logger.Level)
	assert.Equal(t, "local", cfg.Tracer.AppEnv)
	require.NotNil(t, cfg.Metrics.Address)
	assert.Equal(t, ":9091", *cfg.Metrics.Address)
	assert.True(t, cfg.Metrics.RuntimeMetrics)
	assert.Equal(t, 256, cfg.Intercept.MaxValueLength)
	assert.Equal(t, library.StorageMemory, cfg.Library.Storage)
	assert.Equal(t, "localhost", cfg.Postgres.Connection.Host)
	assert.Equal(t, 10*time.Second, cfg.Postgres.ConnectionDetails.HealthCheckInterval)
	assert.Equal(t, "3306", cfg.MariaDB.Connection.Port)
	assert.Equal(t, "UTC", cfg.MariaDB.Connection.Loc)
	assert.Equal(t, 1024, cfg.Kafka.AuditQueueSize)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "library.invocations", cfg.Kafka.Topic)
	assert.Equal(t, 10*time.Second, cfg.Kafka.WriteTimeout)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("intercept:\n  redact_results: true\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Intercept.RedactResults)
	assert.Equal(t, "librarydemo", cfg.Logger.ServiceName)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger: [unterminated"), 0o600))
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestDemoRun(t *testing.T) {
	cfg := defaultConfig()
	cfg.Logger.Level = logger.Error

	var d demo
	app := fxtest.New(t, appOptions(cfg), fx.Populate(&d))
	app.RequireStart()
	defer app.RequireStop()

	require.NoError(t, d.Run(context.Background()))
}

func TestValidateApp(t *testing.T) {
	require.NoError(t, fx.ValidateApp(appOptions(defaultConfig()), fx.Invoke(func(demo) {})))
}

func TestValidateApp_OptionalBackends(t *testing.T) {
	cfg := defaultConfig()
	cfg.Library.Storage = library.StoragePostgres
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	require.NoError(t, fx.ValidateApp(appOptions(cfg), fx.Invoke(func(demo) {})))
	require.NoError(t, fx.ValidateApp(appOptions(cfg), fx.Invoke(func(kafka.Publisher, postgres.Client) {})))

	cfg.Library.Storage = library.StorageMariaDB
	require.NoError(t, fx.ValidateApp(appOptions(cfg), fx.Invoke(func(demo, mariadb.Client) {})))
	assert.Error(t, fx.ValidateApp(appOptions(cfg), fx.Invoke(func(postgres.Client) {})))
}
