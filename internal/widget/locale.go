package widget

import "strings"

// DefaultLocale is used for languages without a speech locale.
const DefaultLocale = "en-US"

var speechLocales = map[string]string{
	"it": "it-IT",
	"es": "es-ES",
	"de": "de-DE",
	"ja": "ja-JP",
	"ar": "ar-SA",
	"hi": "hi-IN",
	"en": "en-US",
}

// LocaleFor maps a translation language code to the locale used by speech
// synthesis and recognition.
func LocaleFor(code string) string {
	if locale, ok := speechLocales[strings.ToLower(strings.TrimSpace(code))]; ok {
		return locale
	}
	return DefaultLocale
}
