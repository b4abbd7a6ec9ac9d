package translator

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"lingo/backend/internal/model"
)

// DefaultLanguageCodes is the table offered by providers that have no
// language listing endpoint.
var DefaultLanguageCodes = []string{
	"en", "it", "es", "de", "ja", "ar", "hi",
	"fr", "pt", "ru", "ko", "zh", "nl", "pl",
	"tr", "sv", "uk", "vi", "id", "el", "he",
}

// LanguageName returns the English display name for a code, or the code
// itself when it does not parse.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}

// StaticLanguages builds a language list in which every language targets
// every other one.
func StaticLanguages(codes []string) []model.Language {
	langs := make([]model.Language, 0, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		targets := make([]string, 0, len(codes)-1)
		for _, other := range codes {
			if other != code {
				targets = append(targets, other)
			}
		}
		langs = append(langs, model.Language{
			Code:    code,
			Name:    LanguageName(code),
			Targets: targets,
		})
	}
	return langs
}
