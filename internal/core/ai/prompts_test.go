package ai_test

import (
	"testing"

	"github.com/ainexus/translation-service/internal/core/ai"
	"github.com/stretchr/testify/require"
)

func TestTranslationSystemPrompt(t *testing.T) {
	prompt := ai.TranslationSystemPrompt("French")

	require.Contains(t, prompt, "into French")
	require.Contains(t, prompt, "Preserve the original meaning, tone, and formatting")
	require.Contains(t, prompt, "Output ONLY the translation")
}
