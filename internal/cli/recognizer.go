package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

var ErrNoAudio = errors.New("no audio file selected")

// Transcriber converts recorded speech to text. ai.Transcriber satisfies it.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, locale string) (string, error)
}

// FileRecognizer dictates from a recorded audio file instead of a live
// microphone. SetFile selects the file used by the next session.
type FileRecognizer struct {
	transcriber Transcriber

	mu   sync.Mutex
	path string
}

func NewFileRecognizer(t Transcriber) *FileRecognizer {
	return &FileRecognizer{transcriber: t}
}

func (r *FileRecognizer) SetFile(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.path = path
}

func (r *FileRecognizer) Recognize(ctx context.Context, locale string) (string, error) {
	r.mu.Lock()
	path := r.path
	r.mu.Unlock()
	if path == "" {
		return "", ErrNoAudio
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	return r.transcriber.Transcribe(ctx, f, filepath.Base(path), locale)
}
