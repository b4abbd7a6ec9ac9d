package widget

import (
	"context"

	"lingo/backend/internal/model"
)

// Translator performs one translation call. translator.Provider and
// client.Client both satisfy it.
type Translator interface {
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
}

// Speaker plays text aloud. Speak starts an utterance and returns; onEnd is
// called when playback finishes or is cancelled.
type Speaker interface {
	Speak(text, locale string, onEnd func()) error
	Cancel()
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteText(text string) error
}

// Recognizer runs one dictation session and returns the transcript. It must
// return promptly once ctx is cancelled.
type Recognizer interface {
	Recognize(ctx context.Context, locale string) (string, error)
}

// Notifier shows a toast. notify.Center satisfies it.
type Notifier interface {
	Push(kind model.NotificationKind, message string) model.Notification
}
