package telemetry

import (
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"log/slog"
)

// Business metrics for application-level monitoring
var (
	// Translation pipeline metrics
	TranslationRequestsTotal api.Int64Counter
	TranslationCacheHits     api.Int64Counter
	TranslationCacheMisses   api.Int64Counter
	TranslationErrorsTotal   api.Int64Counter

	// Model gateway metrics
	ModelCallsTotal    api.Int64Counter
	ModelErrorsTotal   api.Int64Counter
	ModelCallDuration  api.Float64Histogram

	// Cache durability tracking
	CacheWriteFailures api.Int64Counter

	// Error tracking
	ApplicationErrorsTotal api.Int64Counter
	DatabaseErrorsTotal    api.Int64Counter
)

// InitBusinessMetrics initializes all business-level metrics
func InitBusinessMetrics(provider *metric.MeterProvider) error {
	meter := provider.Meter("business")

	var err error

	// Translation pipeline metrics
	TranslationRequestsTotal, err = meter.Int64Counter("translation.requests.total",
		api.WithDescription("Total translation requests by content type and target language"))
	if err != nil {
		return err
	}

	TranslationCacheHits, err = meter.Int64Counter("translation.cache.hits.total",
		api.WithDescription("Total translation requests served from cache"))
	if err != nil {
		return err
	}

	TranslationCacheMisses, err = meter.Int64Counter("translation.cache.misses.total",
		api.WithDescription("Total translation requests that required a model call"))
	if err != nil {
		return err
	}

	TranslationErrorsTotal, err = meter.Int64Counter("translation.errors.total",
		api.WithDescription("Total failed translation requests by error code"))
	if err != nil {
		return err
	}

	// Model gateway metrics
	ModelCallsTotal, err = meter.Int64Counter("model.calls.total",
		api.WithDescription("Total calls issued to the model gateway"))
	if err != nil {
		return err
	}

	ModelErrorsTotal, err = meter.Int64Counter("model.errors.total",
		api.WithDescription("Total model gateway errors by upstream status"))
	if err != nil {
		return err
	}

	ModelCallDuration, err = meter.Float64Histogram("model.call.duration_ms",
		api.WithDescription("Duration of model gateway calls in milliseconds"))
	if err != nil {
		return err
	}

	// Cache durability tracking
	CacheWriteFailures, err = meter.Int64Counter("translation.cache.write_failures.total",
		api.WithDescription("Total non-fatal failures writing a translation back to cache"))
	if err != nil {
		return err
	}

	// Error Metrics
	ApplicationErrorsTotal, err = meter.Int64Counter("application.errors.total",
		api.WithDescription("Total application errors by component and type"))
	if err != nil {
		return err
	}

	DatabaseErrorsTotal, err = meter.Int64Counter("database.errors.total",
		api.WithDescription("Total database errors by operation and type"))
	if err != nil {
		return err
	}

	slog.Info("Business metrics initialized successfully")
	return nil
}
