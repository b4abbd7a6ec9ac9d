// Package widget implements the translation widget: character cap, debounced
// live translation, explicit translation, language swap, speech playback,
// dictation and clipboard copy. Platform services are injected as
// capabilities so the engine runs in a terminal, a server or a test.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"lingo/backend/internal/debounce"
	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
)

// Defaults applied by New.
const (
	DefaultMaxChars = 500
	DefaultDebounce = 500 * time.Millisecond
	DefaultSource   = "en"
	DefaultTarget   = "ja"
)

// Notification texts.
const (
	MsgEmptyInput = "Type something to translate"
	MsgListening  = "Listening"
	MsgCopied     = "Copied successfully"
)

var (
	ErrTooLong        = errors.New("input exceeds character cap")
	ErrEmptyInput     = errors.New("nothing to translate")
	ErrSuperseded     = errors.New("translation superseded by a newer request")
	ErrNoCapability   = errors.New("capability not configured")
	ErrWidgetShutdown = errors.New("widget closed")
)

// Options configures a Widget. Translator is required; the other
// capabilities are optional and the matching actions fail with
// ErrNoCapability when absent.
type Options struct {
	Translator Translator
	Speaker    Speaker
	Clipboard  Clipboard
	Recognizer Recognizer
	Notifier   Notifier

	MaxChars int
	Debounce time.Duration
	Source   string
	Target   string

	// OnChange receives every new snapshot. It runs outside the widget lock
	// and may call back into the widget.
	OnChange func(State)
}

// Widget is the translation widget engine. It is safe for concurrent use.
type Widget struct {
	translator Translator
	speaker    Speaker
	clipboard  Clipboard
	recognizer Recognizer
	notifier   Notifier
	onChange   func(State)
	maxChars   int

	debouncer *debounce.Func[string]

	// ctx scopes debounced calls and dictation; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu           sync.Mutex
	state        State
	closed       bool
	speakGen     uint64
	listenGen    uint64
	listenCancel context.CancelFunc
}

// New creates a Widget.
func New(opts Options) (*Widget, error) {
	if opts.Translator == nil {
		return nil, fmt.Errorf("%w: translator", ErrNoCapability)
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Source == "" {
		opts.Source = DefaultSource
	}
	if opts.Target == "" {
		opts.Target = DefaultTarget
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Widget{
		translator: opts.Translator,
		speaker:    opts.Speaker,
		clipboard:  opts.Clipboard,
		recognizer: opts.Recognizer,
		notifier:   opts.Notifier,
		onChange:   opts.OnChange,
		maxChars:   opts.MaxChars,
		ctx:        ctx,
		cancel:     cancel,
		state: State{
			Source: opts.Source,
			Target: opts.Target,
			Phase:  PhaseIdle,
		},
	}
	w.debouncer = debounce.New(opts.Debounce, w.debounced)
	return w, nil
}

// State returns the current snapshot.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Counter returns the rune count of the input and the character cap.
func (w *Widget) Counter() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return utf8.RuneCountInString(w.state.Input), w.maxChars
}

// Edit replaces the input and re-arms the debounced translation. Text over
// the cap is rejected with one warning and the state is left unchanged.
func (w *Widget) Edit(text string) error {
	if utf8.RuneCountInString(text) > w.maxChars {
		w.warn(fmt.Sprintf("Only %d characters allowed", w.maxChars))
		logger.Debug("edit rejected", "module", "widget", "action", "update", "resource", "input", "result", "failed", "max_chars", w.maxChars)
		return ErrTooLong
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWidgetShutdown
	}
	w.state.Input = text
	w.state.Phase = PhasePending
	snap := w.commit()
	// Armed under the lock so a concurrent Swap cannot interleave.
	w.debouncer.Call(text)
	w.mu.Unlock()

	w.emit(snap)
	return nil
}

// Translate translates the current input immediately, dropping any pending
// debounced call. Empty input produces a warning and no network call.
func (w *Widget) Translate(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWidgetShutdown
	}
	text := w.state.Input
	w.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		w.warn(MsgEmptyInput)
		return ErrEmptyInput
	}
	w.debouncer.Cancel()
	return w.dispatch(ctx, text)
}

// Swap exchanges input with output and source with target in one step.
// In-flight and pending translations are invalidated.
func (w *Widget) Swap() {
	w.mu.Lock()
	w.debouncer.Cancel()
	w.state.Seq++
	w.state.Input, w.state.Output = w.state.Output, w.state.Input
	w.state.Source, w.state.Target = w.state.Target, w.state.Source
	switch {
	case w.state.Input == "" && w.state.Output == "":
		w.state.Phase = PhaseIdle
	case w.state.Output == "":
		w.state.Phase = PhaseComposing
	default:
		w.state.Phase = PhaseSettled
	}
	snap := w.commit()
	w.mu.Unlock()

	logger.Debug("languages swapped", "module", "widget", "action", "swap", "resource", "language", "result", "ok", "source", snap.Source, "target", snap.Target)
	w.emit(snap)
}

// SetSourceLanguage changes the source language selection.
func (w *Widget) SetSourceLanguage(code string) {
	w.mu.Lock()
	w.state.Source = code
	snap := w.commit()
	w.mu.Unlock()
	w.emit(snap)
}

// SetTargetLanguage changes the target language selection.
func (w *Widget) SetTargetLanguage(code string) {
	w.mu.Lock()
	w.state.Target = code
	snap := w.commit()
	w.mu.Unlock()
	w.emit(snap)
}

// Speak toggles playback: while an utterance is playing it is cancelled,
// otherwise text is spoken with the locale derived from lang.
func (w *Widget) Speak(text, lang string) error {
	if w.speaker == nil {
		return fmt.Errorf("%w: speaker", ErrNoCapability)
	}

	w.mu.Lock()
	if w.state.Speaking {
		w.speakGen++
		w.state.Speaking = false
		snap := w.commit()
		w.mu.Unlock()

		w.speaker.Cancel()
		logger.Debug("speech cancelled", "module", "widget", "action", "cancel", "resource", "speech", "result", "ok")
		w.emit(snap)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		w.mu.Unlock()
		return nil
	}
	w.speakGen++
	gen := w.speakGen
	w.state.Speaking = true
	snap := w.commit()
	w.mu.Unlock()
	w.emit(snap)

	locale := LocaleFor(lang)
	if err := w.speaker.Speak(text, locale, func() { w.speechEnded(gen) }); err != nil {
		logger.Error("speech failed", "module", "widget", "action", "speak", "resource", "speech", "result", "failed", "locale", locale, "error", err)
		w.speechEnded(gen)
		return err
	}
	return nil
}

func (w *Widget) speechEnded(gen uint64) {
	w.mu.Lock()
	// Late end signals from a cancelled utterance are ignored.
	if gen != w.speakGen || !w.state.Speaking {
		w.mu.Unlock()
		return
	}
	w.state.Speaking = false
	snap := w.commit()
	w.mu.Unlock()
	w.emit(snap)
}

// Listen toggles dictation. Starting a session shows "Listening" and runs the
// recognizer in the background with the source language locale; the
// transcript is applied as an Edit. Calling Listen during a session cancels
// it. Recognition failures are logged only.
func (w *Widget) Listen(ctx context.Context) error {
	if w.recognizer == nil {
		return fmt.Errorf("%w: recognizer", ErrNoCapability)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWidgetShutdown
	}
	if w.listenCancel != nil {
		cancel := w.listenCancel
		w.listenCancel = nil
		w.listenGen++
		w.state.Listening = false
		snap := w.commit()
		w.mu.Unlock()

		cancel()
		logger.Debug("dictation cancelled", "module", "widget", "action", "cancel", "resource", "dictation", "result", "ok")
		w.emit(snap)
		return nil
	}

	w.listenGen++
	gen := w.listenGen
	lctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(w.ctx, cancel)
	w.listenCancel = cancel
	w.state.Listening = true
	locale := LocaleFor(w.state.Source)
	snap := w.commit()
	w.wg.Add(1)
	w.mu.Unlock()

	w.notify(model.NotificationSuccess, MsgListening)
	w.emit(snap)

	go func() {
		defer w.wg.Done()
		defer stop()
		defer cancel()
		w.listen(lctx, gen, locale)
	}()
	return nil
}

func (w *Widget) listen(ctx context.Context, gen uint64, locale string) {
	transcript, err := w.recognizer.Recognize(ctx, locale)

	w.mu.Lock()
	if gen != w.listenGen {
		w.mu.Unlock()
		return
	}
	w.listenCancel = nil
	w.state.Listening = false
	snap := w.commit()
	w.mu.Unlock()
	w.emit(snap)

	if err != nil {
		if ctx.Err() == nil {
			logger.Error("dictation failed", "module", "widget", "action", "listen", "resource", "dictation", "result", "failed", "locale", locale, "error", err)
		}
		return
	}
	logger.Debug("dictation finished", "module", "widget", "action", "listen", "resource", "dictation", "result", "ok", "locale", locale)
	if transcript != "" {
		_ = w.Edit(transcript)
	}
}

// Copy writes text to the clipboard and shows a success notification.
// Clipboard failures are logged only.
func (w *Widget) Copy(text string) error {
	if w.clipboard == nil {
		return fmt.Errorf("%w: clipboard", ErrNoCapability)
	}
	if err := w.clipboard.WriteText(text); err != nil {
		logger.Error("clipboard write failed", "module", "widget", "action", "copy", "resource", "clipboard", "result", "failed", "error", err)
		return err
	}
	w.notify(model.NotificationSuccess, MsgCopied)
	return nil
}

// Close stops pending work: the debounce timer, dictation, playback and any
// debounced call in flight.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	speaking := w.state.Speaking
	w.speakGen++
	w.listenGen++
	w.listenCancel = nil
	w.mu.Unlock()

	w.debouncer.Cancel()
	w.cancel()
	if speaking && w.speaker != nil {
		w.speaker.Cancel()
	}
	w.wg.Wait()
}

func (w *Widget) debounced(text string) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if strings.TrimSpace(text) == "" {
		w.state.Seq++
		w.state.Output = ""
		w.state.Phase = PhaseIdle
		snap := w.commit()
		w.mu.Unlock()
		w.emit(snap)
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	_ = w.dispatch(w.ctx, text)
}

// dispatch performs one translate call tagged with a fresh sequence number.
// The result is applied only while it is still the latest dispatched call.
func (w *Widget) dispatch(ctx context.Context, text string) error {
	w.mu.Lock()
	w.state.Seq++
	seq := w.state.Seq
	req := model.TranslationRequest{
		Text:           text,
		SourceLanguage: w.state.Source,
		TargetLanguage: w.state.Target,
	}
	w.state.Phase = PhasePending
	snap := w.commit()
	w.mu.Unlock()
	w.emit(snap)

	start := time.Now()
	res, err := w.translator.Translate(ctx, req)

	w.mu.Lock()
	if seq != w.state.Seq {
		w.mu.Unlock()
		logger.Debug("stale translation dropped", "module", "widget", "action", "translate", "resource", "translation", "result", "skipped", "seq", seq)
		return ErrSuperseded
	}
	if err != nil {
		w.state.Phase = PhaseError
		snap = w.commit()
		w.mu.Unlock()

		logger.Error("translation failed", "module", "widget", "action", "translate", "resource", "translation", "result", "failed", "seq", seq, "source", req.SourceLanguage, "target", req.TargetLanguage, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		w.emit(snap)
		return err
	}
	w.state.Output = res.TranslatedText
	w.state.Phase = PhaseSettled
	if w.debouncer.Pending() {
		w.state.Phase = PhasePending
	}
	snap = w.commit()
	w.mu.Unlock()

	logger.Debug("translation applied", "module", "widget", "action", "translate", "resource", "translation", "result", "ok", "seq", seq, "duration_ms", time.Since(start).Milliseconds())
	w.emit(snap)
	return nil
}

// commit bumps the revision and returns the snapshot. Callers hold w.mu.
func (w *Widget) commit() State {
	w.state.Revision++
	return w.state
}

func (w *Widget) emit(s State) {
	if w.onChange != nil {
		w.onChange(s)
	}
}

func (w *Widget) warn(message string) {
	w.notify(model.NotificationWarning, message)
}

func (w *Widget) notify(kind model.NotificationKind, message string) {
	if w.notifier != nil {
		w.notifier.Push(kind, message)
	}
}
