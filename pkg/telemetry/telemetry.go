package telemetry

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// InitTelemetry wires up business metrics, connection pool gauges and Go runtime instrumentation.
func InitTelemetry(provider *metric.MeterProvider, pool *pgxpool.Pool) error {
	if err := InitBusinessMetrics(provider); err != nil {
		return err
	}

	if err := initPoolMetrics(provider, pool); err != nil {
		return err
	}

	return runtime.Start(runtime.WithMeterProvider(provider))
}

func initPoolMetrics(provider *metric.MeterProvider, pool *pgxpool.Pool) error {
	meter := provider.Meter("db_pool")

	totalConns, err := meter.Int64ObservableGauge("db.pool.total_connections",
		api.WithDescription("Total connections in the database pool"))
	if err != nil {
		return err
	}

	idleConns, err := meter.Int64ObservableGauge("db.pool.idle_connections",
		api.WithDescription("Idle connections in the database pool"))
	if err != nil {
		return err
	}

	acquiredConns, err := meter.Int64ObservableGauge("db.pool.acquired_connections",
		api.WithDescription("Acquired connections in the database pool"))
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o api.Observer) error {
		stat := pool.Stat()
		o.ObserveInt64(totalConns, int64(stat.TotalConns()))
		o.ObserveInt64(idleConns, int64(stat.IdleConns()))
		o.ObserveInt64(acquiredConns, int64(stat.AcquiredConns()))
		return nil
	}, totalConns, idleConns, acquiredConns)

	return err
}
