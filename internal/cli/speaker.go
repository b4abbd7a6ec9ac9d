package cli

import (
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"lingo/backend/internal/logger"
)

// DefaultESpeakBinary is the espeak-ng executable looked up on PATH.
const DefaultESpeakBinary = "espeak-ng"

// ESpeakSpeaker plays text through espeak-ng. One utterance runs at a time.
type ESpeakSpeaker struct {
	binary string
	speed  int

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewESpeakSpeaker creates a speaker. An empty binary selects espeak-ng.
func NewESpeakSpeaker(binary string, speed int) *ESpeakSpeaker {
	if binary == "" {
		binary = DefaultESpeakBinary
	}
	if speed <= 0 {
		speed = 150
	}
	return &ESpeakSpeaker{binary: binary, speed: speed}
}

// Speak starts espeak-ng and returns; onEnd runs when the process exits.
func (s *ESpeakSpeaker) Speak(text, locale string, onEnd func()) error {
	cmd := exec.Command(s.binary, "-v", voiceFor(locale), "-s", fmt.Sprintf("%d", s.speed), text)

	s.mu.Lock()
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%s failed: %w", s.binary, err)
	}
	s.cmd = cmd
	s.mu.Unlock()

	go func() {
		err := cmd.Wait()
		s.mu.Lock()
		if s.cmd == cmd {
			s.cmd = nil
		}
		s.mu.Unlock()
		if err != nil {
			logger.Debug("speech process exited", "module", "cli", "action", "speak", "resource", "speech", "result", "failed", "error", err)
		}
		if onEnd != nil {
			onEnd()
		}
	}()
	return nil
}

// Cancel stops the current utterance.
func (s *ESpeakSpeaker) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cmd != nil && s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
}

// voiceFor maps "ja-JP" to the espeak-ng voice "ja".
func voiceFor(locale string) string {
	lang, _, _ := strings.Cut(locale, "-")
	if lang == "" {
		return "en"
	}
	return strings.ToLower(lang)
}
