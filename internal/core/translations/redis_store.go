package translations

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
)

// redisStore layers a Redis hot cache over another Store. Postgres stays the
// source of truth; every Redis failure falls through to the inner store and
// is logged only.
type redisStore struct {
	inner  Store
	client *goredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(inner Store, client *goredis.Client, ttl time.Duration, logger *slog.Logger) Store {
	return &redisStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger.With("component", "translation_hot_cache"),
	}
}

func hotCacheKey(contentType ContentType, contentID, targetLanguage string) string {
	return fmt.Sprintf("translation:%s:%s:%s", contentType, contentID, targetLanguage)
}

func (s *redisStore) Get(ctx context.Context, contentType ContentType, contentID, targetLanguage string) (*TranslationRecord, error) {
	key := hotCacheKey(contentType, contentID, targetLanguage)

	payload, err := s.client.Get(ctx, key).Bytes()
	if err == nil {
		var rec TranslationRecord
		if err := json.Unmarshal(payload, &rec); err == nil && rec.TranslatedText != "" {
			return &rec, nil
		}
		// bad payload, fall through to the durable store
	} else if err != goredis.Nil {
		s.logger.Warn("Hot cache read failed", "error", err.Error(), "key", key)
	}

	rec, err := s.inner.Get(ctx, contentType, contentID, targetLanguage)
	if err != nil || rec == nil {
		return rec, err
	}

	s.backfill(ctx, key, rec)
	return rec, nil
}

func (s *redisStore) Upsert(ctx context.Context, rec *TranslationRecord) error {
	if err := s.inner.Upsert(ctx, rec); err != nil {
		return err
	}

	s.backfill(ctx, hotCacheKey(rec.ContentType, rec.ContentID, rec.TargetLanguage), rec)
	return nil
}

func (s *redisStore) backfill(ctx context.Context, key string, rec *TranslationRecord) {
	payload, err := json.Marshal(rec)
	if err != nil {
		s.logger.Warn("Failed to marshal translation for hot cache", "error", err.Error(), "key", key)
		return
	}

	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.logger.Warn("Hot cache write failed", "error", err.Error(), "key", key)
	}
}
