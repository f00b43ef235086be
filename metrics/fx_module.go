package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/logproxy/logger"
	"github.com/aalemi-dev/logproxy/observability"
)

// FXModule provides *Metrics, MetricsCollector and *InvocationObserver,
// adds the observer to observability.ObserverGroup, and runs the /metrics
// server for the lifetime of the application. With observability.FXModule
// in the graph, proxies bound with intercept.ProvideWithLogging record into
// these metrics automatically.
//
// Requires a metrics.Config and a logger.Logger in the container.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) MetricsCollector { return m },
		NewInvocationObserver,
		fx.Annotate(
			func(o *InvocationObserver) observability.Observer { return o },
			fx.ResultTags(observability.ObserverGroup),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// RegisterMetricsLifecycle starts the metrics server on start and shuts it
// down on stop. It does nothing when the server is disabled.
func RegisterMetricsLifecycle(lc fx.Lifecycle, m *Metrics, log logger.Logger) {
	if m.Server == nil {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting metrics server", nil, map[string]interface{}{
					"address": m.Server.Addr,
				})
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Metrics server stopped unexpectedly", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down metrics server", nil, nil)
			return m.Server.Shutdown(ctx)
		},
	})
}
