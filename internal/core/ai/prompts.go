package ai

import "fmt"

// TranslationSystemPrompt returns the fixed system instruction for content
// translation with the target language's display name embedded.
func TranslationSystemPrompt(targetLanguageName string) string {
	return fmt.Sprintf(`You are an expert translator. Translate the user's text into %s.

<instructions>
1. Preserve the original meaning, tone, and formatting
2. Keep proper nouns and brand names unchanged
3. NEVER translate URLs, email addresses, or code snippets
4. Output ONLY the translation, nothing else
5. NO explanations, NO notes, NO markdown formatting
6. NO leading or trailing newlines
</instructions>`, targetLanguageName)
}
