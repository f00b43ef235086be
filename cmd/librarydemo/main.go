// Command librarydemo wires the library services through logging proxies,
// calls them once and shuts down.
//
//	go run ./cmd/librarydemo -config cmd/librarydemo/config.example.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/aalemi-dev/logproxy/internal/library"
	"github.com/aalemi-dev/logproxy/kafka"
	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/mariadb"
	"github.com/aalemi-dev/logproxy/metrics"
	"github.com/aalemi-dev/logproxy/observability"
	"github.com/aalemi-dev/logproxy/postgres"
	"github.com/aalemi-dev/logproxy/tracer"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "librarydemo: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "librarydemo: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config) error {
	var d demo
	app := fx.New(appOptions(cfg), fx.Populate(&d))

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	runErr := d.Run(context.Background())

	stopCtx, cancel := context.WithTimeout(context.Background(), app.StopTimeout())
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func appOptions(cfg Config) fx.Option {
	opts := []fx.Option{
		fx.Supply(cfg.Logger, cfg.Tracer, cfg.Metrics, cfg.Intercept, cfg.Library),
		logger.FXModule,
		tracer.FXModule,
		metrics.FXModule,
		observability.FXModule,
		library.FXModule,
		fx.WithLogger(func(l *logger.LoggerClient) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Zap.Named("fx")}
		}),
	}
	switch cfg.Library.Storage {
	case library.StoragePostgres:
		opts = append(opts, fx.Supply(cfg.Postgres), postgres.FXModule)
	case library.StorageMariaDB:
		opts = append(opts, fx.Supply(cfg.MariaDB), mariadb.FXModule)
	}
	if len(cfg.Kafka.Brokers) > 0 {
		opts = append(opts, fx.Supply(cfg.Kafka), kafka.FXModule)
	}
	return fx.Options(opts...)
}
