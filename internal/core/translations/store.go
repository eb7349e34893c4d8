package translations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ainexus/translation-service/internal/infra/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Store is the translation cache keyed by (content_type, content_id,
// target_language). Get returns (nil, nil) on a cache miss.
type Store interface {
	Get(ctx context.Context, contentType ContentType, contentID, targetLanguage string) (*TranslationRecord, error)
	Upsert(ctx context.Context, rec *TranslationRecord) error
}

type postgresStore struct {
	db     postgres.DB
	logger *slog.Logger
}

func NewPostgresStore(db postgres.DB, logger *slog.Logger) Store {
	return &postgresStore{
		db:     db,
		logger: logger.With("component", "translation_store"),
	}
}

func (s *postgresStore) Get(ctx context.Context, contentType ContentType, contentID, targetLanguage string) (*TranslationRecord, error) {
	query := `
		SELECT id, content_type, content_id, source_language, target_language,
		       original_text, translated_text, translated_at
		FROM content_translations
		WHERE content_type = $1 AND content_id = $2 AND target_language = $3`

	var rec TranslationRecord
	err := s.db.QueryRow(ctx, query, contentType, contentID, targetLanguage).Scan(
		&rec.ID, &rec.ContentType, &rec.ContentID, &rec.SourceLanguage,
		&rec.TargetLanguage, &rec.OriginalText, &rec.TranslatedText, &rec.TranslatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load translation: %w", err)
	}

	return &rec, nil
}

func (s *postgresStore) Upsert(ctx context.Context, rec *TranslationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.TranslatedAt.IsZero() {
		rec.TranslatedAt = time.Now()
	}

	query := `
		INSERT INTO content_translations (
			id, content_type, content_id, source_language, target_language,
			original_text, translated_text, translated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (content_type, content_id, target_language)
		DO UPDATE SET
			source_language = EXCLUDED.source_language,
			original_text = EXCLUDED.original_text,
			translated_text = EXCLUDED.translated_text,
			translated_at = EXCLUDED.translated_at`

	_, err := s.db.Exec(ctx, query,
		rec.ID, rec.ContentType, rec.ContentID, rec.SourceLanguage,
		rec.TargetLanguage, rec.OriginalText, rec.TranslatedText, rec.TranslatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store translation: %w", err)
	}

	return nil
}
