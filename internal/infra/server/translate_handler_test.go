package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/ainexus/translation-service/internal/core/ai"
	"github.com/ainexus/translation-service/internal/core/translations"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	records map[string]*translations.TranslationRecord
}

func (s *memStore) Get(_ context.Context, contentType translations.ContentType, contentID, targetLanguage string) (*translations.TranslationRecord, error) {
	return s.records[string(contentType)+"|"+contentID+"|"+targetLanguage], nil
}

func (s *memStore) Upsert(_ context.Context, rec *translations.TranslationRecord) error {
	s.records[string(rec.ContentType)+"|"+rec.ContentID+"|"+rec.TargetLanguage] = rec
	return nil
}

type fakeModel struct {
	response string
	err      error
	calls    int
}

func (m *fakeModel) Complete(_ context.Context, _, _ string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func newTestApp(model ai.Client) *fiber.App {
	store := &memStore{records: make(map[string]*translations.TranslationRecord)}
	svc := translations.NewService(store, model, slog.Default())

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	registerHttpRoutes(app, svc)
	return app
}

func postTranslate(t *testing.T, app *fiber.App, payload map[string]string) (int, map[string]interface{}) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/translate-content", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	return resp.StatusCode, decoded
}

func validPayload() map[string]string {
	return map[string]string{
		"content_type":      "post",
		"content_id":        "post-42",
		"target_language":   "fr",
		"text_to_translate": "Hello, how are you?",
	}
}

func TestTranslateContent_Success(t *testing.T) {
	model := &fakeModel{response: "Bonjour, comment allez-vous ?"}
	app := newTestApp(model)

	status, body := postTranslate(t, app, validPayload())
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, "Bonjour, comment allez-vous ?", body["translated_text"])
	require.Equal(t, false, body["from_cache"])

	// Same triple again comes from cache with no extra model call.
	status, body = postTranslate(t, app, validPayload())
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, true, body["from_cache"])
	require.Equal(t, 1, model.calls)
}

func TestTranslateContent_MissingField(t *testing.T) {
	model := &fakeModel{response: "unused"}
	app := newTestApp(model)

	payload := validPayload()
	delete(payload, "text_to_translate")

	status, body := postTranslate(t, app, payload)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, body["error"], "text_to_translate")
	require.Zero(t, model.calls)
}

func TestTranslateContent_UpstreamRateLimit(t *testing.T) {
	model := &fakeModel{err: &ai.StatusError{Status: 429, Body: "slow down"}}
	app := newTestApp(model)

	status, body := postTranslate(t, app, validPayload())
	require.Equal(t, fiber.StatusTooManyRequests, status)
	require.NotEmpty(t, body["error"])
}

func TestTranslateContent_UpstreamQuotaExhausted(t *testing.T) {
	model := &fakeModel{err: &ai.StatusError{Status: 402, Body: "quota"}}
	app := newTestApp(model)

	status, _ := postTranslate(t, app, validPayload())
	require.Equal(t, fiber.StatusPaymentRequired, status)
}

func TestTranslateContent_PreflightAllowed(t *testing.T) {
	app := newTestApp(&fakeModel{})

	req := httptest.NewRequest("OPTIONS", "/translate-content", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Less(t, resp.StatusCode, 300)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
