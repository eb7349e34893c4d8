package translations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ainexus/translation-service/internal/core/ai"
	"github.com/ainexus/translation-service/internal/core/language"
	"github.com/ainexus/translation-service/pkg/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	api "go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("translations")

// Service orchestrates the cache-first translation policy: look the triple
// up, call the model gateway on a miss, write the result back for reuse.
type Service struct {
	store  Store
	model  ai.Client
	logger *slog.Logger
	flight singleflight.Group
}

func NewService(store Store, model ai.Client, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		model:  model,
		logger: logger.With("service", "translations"),
	}
}

// Translate returns the translated text for the request, serving from cache
// when a record for (content_type, content_id, target_language) exists. A
// cache hit short-circuits unconditionally; it does not compare the cached
// original text with the current one (staleness on source edits is an
// accepted product decision, there is no invalidation policy).
func (s *Service) Translate(ctx context.Context, req *Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "translations.Translate")
	defer span.End()

	if telemetry.TranslationRequestsTotal != nil {
		telemetry.TranslationRequestsTotal.Add(ctx, 1, api.WithAttributes(
			attribute.String("content_type", req.ContentType),
			attribute.String("target_language", req.TargetLanguage),
		))
	}

	// Concurrent misses for the same triple collapse into one model call.
	// The duplicate-miss race is benign either way, the upsert keeps the
	// later write.
	key := fmt.Sprintf("%s|%s|%s", req.ContentType, req.ContentID, req.TargetLanguage)
	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		return s.translate(ctx, req)
	})
	if err != nil {
		if telemetry.TranslationErrorsTotal != nil {
			telemetry.TranslationErrorsTotal.Add(ctx, 1)
		}
		return nil, err
	}

	return v.(*Result), nil
}

func (s *Service) translate(ctx context.Context, req *Request) (*Result, error) {
	contentType := ContentType(req.ContentType)

	cached, err := s.store.Get(ctx, contentType, req.ContentID, req.TargetLanguage)
	if err != nil {
		s.logger.Error("Cache lookup failed",
			"error", err.Error(),
			"content_type", req.ContentType,
			"content_id", req.ContentID,
			"target_language", req.TargetLanguage)
		if telemetry.DatabaseErrorsTotal != nil {
			telemetry.DatabaseErrorsTotal.Add(ctx, 1)
		}
		return nil, fmt.Errorf("%w: cache lookup failed", ErrModelError)
	}

	if cached != nil {
		s.logger.Debug("Serving translation from cache",
			"content_type", req.ContentType,
			"content_id", req.ContentID,
			"target_language", req.TargetLanguage)
		if telemetry.TranslationCacheHits != nil {
			telemetry.TranslationCacheHits.Add(ctx, 1)
		}
		return &Result{TranslatedText: cached.TranslatedText, FromCache: true}, nil
	}

	if telemetry.TranslationCacheMisses != nil {
		telemetry.TranslationCacheMisses.Add(ctx, 1)
	}

	systemPrompt := ai.TranslationSystemPrompt(language.DisplayName(req.TargetLanguage))
	output, err := s.model.Complete(ctx, systemPrompt, req.TextToTranslate)
	if err != nil {
		return nil, mapModelError(err)
	}

	translated := strings.TrimSpace(output)
	if translated == "" {
		return nil, ErrEmptyTranslation
	}

	sourceLanguage := req.SourceLanguage
	if sourceLanguage == "" {
		sourceLanguage = language.Auto
	}

	rec := &TranslationRecord{
		ContentType:    contentType,
		ContentID:      req.ContentID,
		SourceLanguage: sourceLanguage,
		TargetLanguage: req.TargetLanguage,
		OriginalText:   req.TextToTranslate,
		TranslatedText: translated,
		TranslatedAt:   time.Now(),
	}

	// Availability of the translation takes priority over cache durability,
	// a failed write is logged and the response still succeeds.
	if err := s.store.Upsert(ctx, rec); err != nil {
		s.logger.Warn("Failed to cache translation",
			"error", err.Error(),
			"content_type", req.ContentType,
			"content_id", req.ContentID,
			"target_language", req.TargetLanguage)
		if telemetry.CacheWriteFailures != nil {
			telemetry.CacheWriteFailures.Add(ctx, 1)
		}
	}

	s.logger.Info("Translation completed",
		"content_type", req.ContentType,
		"content_id", req.ContentID,
		"target_language", req.TargetLanguage,
		"source_language", sourceLanguage)

	return &Result{TranslatedText: translated, FromCache: false}, nil
}

func validate(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidRequest)
	}
	if req.ContentType == "" {
		return fmt.Errorf("%w: content_type is required", ErrInvalidRequest)
	}
	if !ValidContentType(req.ContentType) {
		return fmt.Errorf("%w: unknown content_type %q", ErrInvalidRequest, req.ContentType)
	}
	if req.ContentID == "" {
		return fmt.Errorf("%w: content_id is required", ErrInvalidRequest)
	}
	if req.TargetLanguage == "" {
		return fmt.Errorf("%w: target_language is required", ErrInvalidRequest)
	}
	if req.TextToTranslate == "" {
		return fmt.Errorf("%w: text_to_translate is required", ErrInvalidRequest)
	}
	return nil
}

func mapModelError(err error) error {
	var statusErr *ai.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, statusErr.Body)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %s", ErrQuotaExhausted, statusErr.Body)
		default:
			return fmt.Errorf("%w: upstream status %d", ErrModelError, statusErr.Status)
		}
	}
	return fmt.Errorf("%w: %v", ErrModelError, err)
}
