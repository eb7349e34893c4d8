package translations_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/ainexus/translation-service/internal/core/ai"
	"github.com/ainexus/translation-service/internal/core/translations"
	"github.com/stretchr/testify/require"
)

type storeStub struct {
	records    map[string]*translations.TranslationRecord
	getCalls   int
	upsertCalls int
	upsertErr  error
}

func newStoreStub() *storeStub {
	return &storeStub{records: make(map[string]*translations.TranslationRecord)}
}

func storeKey(contentType translations.ContentType, contentID, targetLanguage string) string {
	return string(contentType) + "|" + contentID + "|" + targetLanguage
}

func (s *storeStub) Get(_ context.Context, contentType translations.ContentType, contentID, targetLanguage string) (*translations.TranslationRecord, error) {
	s.getCalls++
	return s.records[storeKey(contentType, contentID, targetLanguage)], nil
}

func (s *storeStub) Upsert(_ context.Context, rec *translations.TranslationRecord) error {
	s.upsertCalls++
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.records[storeKey(rec.ContentType, rec.ContentID, rec.TargetLanguage)] = rec
	return nil
}

type modelStub struct {
	response string
	err      error
	calls    int
}

func (m *modelStub) Complete(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func testLogger() *slog.Logger {
	return slog.Default()
}

func frenchRequest() *translations.Request {
	return &translations.Request{
		ContentType:     "post",
		ContentID:       "post-42",
		TargetLanguage:  "fr",
		TextToTranslate: "Hello, how are you?",
	}
}

func TestTranslate_CacheMissCallsModelAndCaches(t *testing.T) {
	store := newStoreStub()
	model := &modelStub{response: "Bonjour, comment allez-vous ?"}
	svc := translations.NewService(store, model, testLogger())

	result, err := svc.Translate(context.Background(), frenchRequest())
	require.NoError(t, err)
	require.Equal(t, "Bonjour, comment allez-vous ?", result.TranslatedText)
	require.False(t, result.FromCache)
	require.Equal(t, 1, model.calls, "expected exactly one model call")

	rec := store.records[storeKey("post", "post-42", "fr")]
	require.NotNil(t, rec, "expected a cache row for the triple")
	require.Equal(t, "Hello, how are you?", rec.OriginalText)
	require.Equal(t, "auto", rec.SourceLanguage, "absent source language stored as auto")
}

func TestTranslate_RepeatedCallServedFromCache(t *testing.T) {
	store := newStoreStub()
	model := &modelStub{response: "Bonjour, comment allez-vous ?"}
	svc := translations.NewService(store, model, testLogger())

	_, err := svc.Translate(context.Background(), frenchRequest())
	require.NoError(t, err)

	result, err := svc.Translate(context.Background(), frenchRequest())
	require.NoError(t, err)
	require.Equal(t, "Bonjour, comment allez-vous ?", result.TranslatedText)
	require.True(t, result.FromCache)
	require.Equal(t, 1, model.calls, "cache hit must not issue a second model call")
}

func TestTranslate_CacheHitIgnoresChangedOriginalText(t *testing.T) {
	store := newStoreStub()
	model := &modelStub{response: "Bonjour, comment allez-vous ?"}
	svc := translations.NewService(store, model, testLogger())

	_, err := svc.Translate(context.Background(), frenchRequest())
	require.NoError(t, err)

	edited := frenchRequest()
	edited.TextToTranslate = "Completely different text after an edit"
	result, err := svc.Translate(context.Background(), edited)
	require.NoError(t, err)
	require.True(t, result.FromCache, "hit short-circuits without comparing original text")
	require.Equal(t, "Bonjour, comment allez-vous ?", result.TranslatedText)
	require.Equal(t, 1, model.calls)
}

func TestTranslate_MissingFieldsRejectedBeforeAnyIO(t *testing.T) {
	cases := map[string]func(*translations.Request){
		"content_type":      func(r *translations.Request) { r.ContentType = "" },
		"content_id":        func(r *translations.Request) { r.ContentID = "" },
		"target_language":   func(r *translations.Request) { r.TargetLanguage = "" },
		"text_to_translate": func(r *translations.Request) { r.TextToTranslate = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStoreStub()
			model := &modelStub{response: "should not be called"}
			svc := translations.NewService(store, model, testLogger())

			req := frenchRequest()
			mutate(req)

			_, err := svc.Translate(context.Background(), req)
			require.ErrorIs(t, err, translations.ErrInvalidRequest)
			require.Zero(t, store.getCalls, "invalid request must not read the cache")
			require.Zero(t, store.upsertCalls, "invalid request must not write the cache")
			require.Zero(t, model.calls, "invalid request must not call the model")
		})
	}
}

func TestTranslate_UnknownContentTypeRejected(t *testing.T) {
	svc := translations.NewService(newStoreStub(), &modelStub{}, testLogger())

	req := frenchRequest()
	req.ContentType = "comment"

	_, err := svc.Translate(context.Background(), req)
	require.ErrorIs(t, err, translations.ErrInvalidRequest)
}

func TestTranslate_RateLimitedUpstreamWritesNoCacheRow(t *testing.T) {
	store := newStoreStub()
	model := &modelStub{err: &ai.StatusError{Status: 429, Body: "rate limited"}}
	svc := translations.NewService(store, model, testLogger())

	_, err := svc.Translate(context.Background(), frenchRequest())
	require.ErrorIs(t, err, translations.ErrRateLimited)
	require.Zero(t, store.upsertCalls, "failed model call must not write the cache")
}

func TestTranslate_QuotaExhaustedUpstream(t *testing.T) {
	model := &modelStub{err: &ai.StatusError{Status: 402, Body: "quota exhausted"}}
	svc := translations.NewService(newStoreStub(), model, testLogger())

	_, err := svc.Translate(context.Background(), frenchRequest())
	require.ErrorIs(t, err, translations.ErrQuotaExhausted)
}

func TestTranslate_OtherUpstreamStatusIsModelError(t *testing.T) {
	model := &modelStub{err: &ai.StatusError{Status: 500, Body: "boom"}}
	svc := translations.NewService(newStoreStub(), model, testLogger())

	_, err := svc.Translate(context.Background(), frenchRequest())
	require.ErrorIs(t, err, translations.ErrModelError)
}

func TestTranslate_EmptyModelOutputFailsAndIsNotCached(t *testing.T) {
	store := newStoreStub()
	model := &modelStub{response: "   \n "}
	svc := translations.NewService(store, model, testLogger())

	_, err := svc.Translate(context.Background(), frenchRequest())
	require.ErrorIs(t, err, translations.ErrEmptyTranslation)
	require.Zero(t, store.upsertCalls)
}

func TestTranslate_CacheWriteFailureIsNonFatal(t *testing.T) {
	store := newStoreStub()
	store.upsertErr = context.DeadlineExceeded
	model := &modelStub{response: "Bonjour"}
	svc := translations.NewService(store, model, testLogger())

	result, err := svc.Translate(context.Background(), frenchRequest())
	require.NoError(t, err, "response succeeds even when the cache write fails")
	require.Equal(t, "Bonjour", result.TranslatedText)
	require.False(t, result.FromCache)
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, http.StatusTooManyRequests, translations.HTTPStatus(translations.ErrRateLimited))
	require.Equal(t, http.StatusPaymentRequired, translations.HTTPStatus(translations.ErrQuotaExhausted))
	require.Equal(t, http.StatusBadRequest, translations.HTTPStatus(translations.ErrInvalidRequest))
	require.Equal(t, http.StatusBadRequest, translations.HTTPStatus(translations.ErrModelError))
	require.Equal(t, http.StatusBadRequest, translations.HTTPStatus(translations.ErrEmptyTranslation))
}
