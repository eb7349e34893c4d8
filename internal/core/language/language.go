package language

import "strings"

// Auto is the source language recorded when detection did not run or failed.
const Auto = "auto"

var displayNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"ru": "Russian",
	"uk": "Ukrainian",
	"tr": "Turkish",
	"ar": "Arabic",
	"hi": "Hindi",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"vi": "Vietnamese",
	"id": "Indonesian",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"cs": "Czech",
	"el": "Greek",
	"he": "Hebrew",
	"th": "Thai",
}

// Normalize lowercases a language tag and strips the region subtag,
// so "pt-BR" becomes "pt". Empty input stays empty.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if parts := strings.Split(code, "-"); len(parts) > 1 {
		return parts[0]
	}
	return code
}

// Known reports whether the code identifies a concrete language.
func Known(code string) bool {
	normalized := Normalize(code)
	return normalized != "" && normalized != Auto && normalized != "unknown"
}

// DisplayName returns the English name for an ISO 639-1 code. Codes outside
// the table fall back to the normalized code itself so prompts stay usable.
func DisplayName(code string) string {
	normalized := Normalize(code)
	if name, ok := displayNames[normalized]; ok {
		return name
	}
	return normalized
}
