package model

import "encoding/json"

// TranslationRequest is one outbound translation call. It only lives for the
// duration of that call.
type TranslationRequest struct {
	Text           string `json:"q"`
	SourceLanguage string `json:"source"`
	TargetLanguage string `json:"target"`
}

// TranslationResult holds the translated text. Raw carries the upstream body
// when the provider's native reply already matches the public route format.
type TranslationResult struct {
	TranslatedText string          `json:"translatedText"`
	Raw            json.RawMessage `json:"-"`
}

// Language is one selectable translation language.
type Language struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	Targets []string `json:"targets,omitempty"`
}

// LanguageList is the provider's language table.
type LanguageList struct {
	Languages []Language
	Raw       json.RawMessage
}
