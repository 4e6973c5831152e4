package translate

import (
	"fmt"

	"github.com/fpang/polylingo/internal/language"
)

// SystemPrompt establishes the translator persona for every request.
const SystemPrompt = "You are a professional multilingual translator for a travel and communication app. Translate text precisely and naturally."

// BuildPrompt renders the user message for a translation request. An absent
// or "auto" source language uses the detection phrasing; any other code is
// resolved through the language catalog, with unknown codes used verbatim.
func BuildPrompt(text, sourceLanguage, targetLanguage string) string {
	target := language.Name(targetLanguage)
	if language.IsAuto(sourceLanguage) {
		return fmt.Sprintf("Translate the following text to %s:\n\n\"%s\"", target, text)
	}
	return fmt.Sprintf("Translate the following %s text to %s:\n\n\"%s\"", language.Name(sourceLanguage), target, text)
}
