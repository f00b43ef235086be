package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aalemi-dev/logproxy/intercept"
	"github.com/aalemi-dev/logproxy/internal/library"
	"github.com/aalemi-dev/logproxy/kafka"
	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/mariadb"
	"github.com/aalemi-dev/logproxy/metrics"
	"github.com/aalemi-dev/logproxy/postgres"
	"github.com/aalemi-dev/logproxy/tracer"
)

// Config is the demo's configuration file, one section per package.
type Config struct {
	Logger    logger.Config    `yaml:"logger"`
	Tracer    tracer.Config    `yaml:"tracer"`
	Metrics   metrics.Config   `yaml:"metrics"`
	Intercept intercept.Config `yaml:"intercept"`
	Library   library.Config   `yaml:"library"`

	// Postgres is used when Library.Storage is "postgres".
	Postgres postgres.Config `yaml:"postgres"`

	// MariaDB is used when Library.Storage is "mariadb".
	MariaDB mariadb.Config `yaml:"mariadb"`

	// Kafka enables the invocation audit topic when Brokers is set.
	Kafka kafka.Config `yaml:"kafka"`
}

func defaultConfig() Config {
	return Config{
		Logger:  logger.Config{Level: logger.Info, ServiceName: "librarydemo", EnableTracing: true},
		Tracer:  tracer.Config{ServiceName: "librarydemo", AppEnv: "local"},
		Metrics: metrics.Config{ServiceName: "librarydemo", Address: metrics.Ptr("")},
		Library: library.Config{Storage: library.StorageMemory},
		Kafka:   kafka.Config{Topic: "library.invocations"},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
