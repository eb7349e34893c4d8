package server

import (
	"log/slog"

	"github.com/ainexus/translation-service/internal/core/translations"
	"github.com/gofiber/fiber/v2"
)

type translateContentRequest struct {
	ContentType     string `json:"content_type"`
	ContentID       string `json:"content_id"`
	TargetLanguage  string `json:"target_language"`
	TextToTranslate string `json:"text_to_translate"`
	SourceLanguage  string `json:"source_language"`
}

type translateContentResponse struct {
	Success        bool   `json:"success"`
	TranslatedText string `json:"translated_text"`
	FromCache      bool   `json:"from_cache"`
}

func translateContentHandler(svc *translations.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body translateContentRequest
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		result, err := svc.Translate(c.UserContext(), &translations.Request{
			ContentType:     body.ContentType,
			ContentID:       body.ContentID,
			TargetLanguage:  body.TargetLanguage,
			TextToTranslate: body.TextToTranslate,
			SourceLanguage:  body.SourceLanguage,
		})
		if err != nil {
			slog.Warn("Translation request failed",
				"error", err.Error(),
				"content_type", body.ContentType,
				"content_id", body.ContentID,
				"target_language", body.TargetLanguage)
			return c.Status(translations.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
		}

		return c.JSON(translateContentResponse{
			Success:        true,
			TranslatedText: result.TranslatedText,
			FromCache:      result.FromCache,
		})
	}
}
