package translations

import (
	"time"

	"github.com/google/uuid"
)

// ContentType identifies the kind of entity a translation belongs to.
type ContentType string

const (
	ContentTypePost       ContentType = "post"
	ContentTypeArticle    ContentType = "article"
	ContentTypeDiscussion ContentType = "discussion"
	ContentTypeTool       ContentType = "tool"
	ContentTypeEvent      ContentType = "event"
)

// ValidContentType reports whether the given value is a known content kind.
func ValidContentType(t string) bool {
	switch ContentType(t) {
	case ContentTypePost, ContentTypeArticle, ContentTypeDiscussion, ContentTypeTool, ContentTypeEvent:
		return true
	}
	return false
}

// TranslationRecord is one cached translation. At most one record exists per
// (content_type, content_id, target_language); writes replace, never append.
// OriginalText is kept verbatim for audit only and is not part of the key,
// so edits to source content do not invalidate the cached translation.
type TranslationRecord struct {
	ID             uuid.UUID   `json:"id" db:"id"`
	ContentType    ContentType `json:"content_type" db:"content_type"`
	ContentID      string      `json:"content_id" db:"content_id"`
	SourceLanguage string      `json:"source_language" db:"source_language"`
	TargetLanguage string      `json:"target_language" db:"target_language"`
	OriginalText   string      `json:"original_text" db:"original_text"`
	TranslatedText string      `json:"translated_text" db:"translated_text"`
	TranslatedAt   time.Time   `json:"translated_at" db:"translated_at"`
}

// Request is the input contract of the translation handler.
type Request struct {
	ContentType     string
	ContentID       string
	TargetLanguage  string
	TextToTranslate string
	SourceLanguage  string // optional, recorded as "auto" when absent
}

// Result is the output of a successful translation.
type Result struct {
	TranslatedText string
	FromCache      bool
}
