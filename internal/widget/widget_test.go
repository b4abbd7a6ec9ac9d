package widget_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"lingo/backend/internal/model"
	"lingo/backend/internal/widget"
)

type fakeTranslator struct {
	mu     sync.Mutex
	reqs   []model.TranslationRequest
	fn     func(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
	called chan model.TranslationRequest
}

func newFakeTranslator() *fakeTranslator {
	return &fakeTranslator{called: make(chan model.TranslationRequest, 16)}
}

func (f *fakeTranslator) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	fn := f.fn
	f.mu.Unlock()
	f.called <- req

	if fn != nil {
		return fn(ctx, req)
	}
	return &model.TranslationResult{TranslatedText: "[" + req.TargetLanguage + "] " + req.Text}, nil
}

func (f *fakeTranslator) requests() []model.TranslationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.TranslationRequest(nil), f.reqs...)
}

type fakeNotifier struct {
	mu   sync.Mutex
	msgs []model.Notification
}

func (f *fakeNotifier) Push(kind model.NotificationKind, message string) model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := model.Notification{Kind: kind, Message: message}
	f.msgs = append(f.msgs, n)
	return n
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.msgs))
	for _, n := range f.msgs {
		out = append(out, n.Message)
	}
	return out
}

type fakeSpeaker struct {
	mu        sync.Mutex
	texts     []string
	locales   []string
	ends      []func()
	cancelled int
	err       error
}

func (f *fakeSpeaker) Speak(text, locale string, onEnd func()) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	f.locales = append(f.locales, locale)
	f.ends = append(f.ends, onEnd)
	return nil
}

func (f *fakeSpeaker) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled++
}

func (f *fakeSpeaker) end(i int) {
	f.mu.Lock()
	end := f.ends[i]
	f.mu.Unlock()
	end()
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fakeRecognizer struct {
	locales    chan string
	transcript chan string
	err        error
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{locales: make(chan string, 4), transcript: make(chan string, 4)}
}

func (f *fakeRecognizer) Recognize(ctx context.Context, locale string) (string, error) {
	f.locales <- locale
	if f.err != nil {
		return "", f.err
	}
	select {
	case t := <-f.transcript:
		return t, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type harness struct {
	w          *widget.Widget
	translator *fakeTranslator
	notifier   *fakeNotifier
	speaker    *fakeSpeaker
	clipboard  *fakeClipboard
	recognizer *fakeRecognizer
}

func newHarness(t *testing.T, opts widget.Options) *harness {
	t.Helper()
	h := &harness{
		translator: newFakeTranslator(),
		notifier:   &fakeNotifier{},
		speaker:    &fakeSpeaker{},
		clipboard:  &fakeClipboard{},
		recognizer: newFakeRecognizer(),
	}
	opts.Translator = h.translator
	opts.Notifier = h.notifier
	opts.Speaker = h.speaker
	opts.Clipboard = h.clipboard
	opts.Recognizer = h.recognizer
	if opts.Debounce == 0 {
		opts.Debounce = 20 * time.Millisecond
	}

	w, err := widget.New(opts)
	require.NoError(t, err)
	t.Cleanup(w.Close)
	h.w = w
	return h
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestNew_Defaults(t *testing.T) {
	h := newHarness(t, widget.Options{})
	s := h.w.State()
	require.Equal(t, "en", s.Source)
	require.Equal(t, "ja", s.Target)
	require.Equal(t, widget.PhaseIdle, s.Phase)

	n, limit := h.w.Counter()
	require.Equal(t, 0, n)
	require.Equal(t, 500, limit)
}

func TestNew_RequiresTranslator(t *testing.T) {
	_, err := widget.New(widget.Options{})
	require.ErrorIs(t, err, widget.ErrNoCapability)
}

func TestCounter_EqualsRuneCount(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	for _, text := range []string{"", "hello", "こんにちは世界", "ça va?", strings.Repeat("a", 499)} {
		require.NoError(t, h.w.Edit(text))
		n, _ := h.w.Counter()
		require.Equal(t, len([]rune(text)), n, "text %q", text)
	}
}

func TestEdit_RejectsOverCapOncePerAttempt(t *testing.T) {
	h := newHarness(t, widget.Options{MaxChars: 5, Debounce: time.Hour})

	require.NoError(t, h.w.Edit("hello"))
	before := h.w.State()

	require.ErrorIs(t, h.w.Edit("hello!"), widget.ErrTooLong)
	require.ErrorIs(t, h.w.Edit("hello!!"), widget.ErrTooLong)

	after := h.w.State()
	require.Equal(t, before, after)
	require.Equal(t, []string{"Only 5 characters allowed", "Only 5 characters allowed"}, h.notifier.messages())
}

func TestEdit_AcceptsExactlyCap(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	require.NoError(t, h.w.Edit(strings.Repeat("あ", 500)))
	n, limit := h.w.Counter()
	require.Equal(t, limit, n)
	require.Empty(t, h.notifier.messages())
}

func TestTranslate_EmptyInputWarnsWithoutCall(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	require.ErrorIs(t, h.w.Translate(context.Background()), widget.ErrEmptyInput)
	require.NoError(t, h.w.Edit("   \n\t"))
	require.ErrorIs(t, h.w.Translate(context.Background()), widget.ErrEmptyInput)

	require.Empty(t, h.translator.requests())
	require.Equal(t, []string{widget.MsgEmptyInput, widget.MsgEmptyInput}, h.notifier.messages())
}

func TestTranslate_ExplicitCallBypassesDebounce(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: 50 * time.Millisecond})

	require.NoError(t, h.w.Edit("hello"))
	require.NoError(t, h.w.Translate(context.Background()))

	s := h.w.State()
	require.Equal(t, widget.PhaseSettled, s.Phase)
	require.Equal(t, "[ja] hello", s.Output)

	time.Sleep(120 * time.Millisecond)
	require.Len(t, h.translator.requests(), 1)
}

func TestTranslate_ForwardsLanguagesAndAppliesResult(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})
	h.translator.fn = func(_ context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
		return &model.TranslationResult{TranslatedText: "こんにちは"}, nil
	}

	require.NoError(t, h.w.Edit("hello"))
	require.NoError(t, h.w.Translate(context.Background()))

	require.Equal(t, []model.TranslationRequest{{Text: "hello", SourceLanguage: "en", TargetLanguage: "ja"}}, h.translator.requests())
	require.Equal(t, "こんにちは", h.w.State().Output)
}

func TestDebounce_RapidEditsProduceOneCall(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: 40 * time.Millisecond})

	for _, text := range []string{"h", "he", "hel", "hell", "hello"} {
		require.NoError(t, h.w.Edit(text))
	}
	require.Equal(t, widget.PhasePending, h.w.State().Phase)

	waitFor(t, func() bool { return h.w.State().Phase == widget.PhaseSettled })
	time.Sleep(80 * time.Millisecond)

	reqs := h.translator.requests()
	require.Len(t, reqs, 1)
	require.Equal(t, "hello", reqs[0].Text)
	require.Equal(t, "[ja] hello", h.w.State().Output)
}

func TestDebounce_WhitespaceClearsOutput(t *testing.T) {
	h := newHarness(t, widget.Options{})

	require.NoError(t, h.w.Edit("hello"))
	waitFor(t, func() bool { return h.w.State().Output == "[ja] hello" })

	require.NoError(t, h.w.Edit("  "))
	waitFor(t, func() bool { return h.w.State().Phase == widget.PhaseIdle })

	require.Empty(t, h.w.State().Output)
	require.Len(t, h.translator.requests(), 1)
}

func TestTranslate_StaleResponseDoesNotOverwriteNewer(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	release := make(chan struct{})
	h.translator.fn = func(_ context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
		if req.Text == "slow" {
			<-release
		}
		return &model.TranslationResult{TranslatedText: "out:" + req.Text}, nil
	}

	require.NoError(t, h.w.Edit("slow"))
	errCh := make(chan error, 1)
	go func() { errCh <- h.w.Translate(context.Background()) }()
	<-h.translator.called

	require.NoError(t, h.w.Edit("fast"))
	require.NoError(t, h.w.Translate(context.Background()))
	<-h.translator.called
	require.Equal(t, "out:fast", h.w.State().Output)

	close(release)
	require.ErrorIs(t, <-errCh, widget.ErrSuperseded)

	s := h.w.State()
	require.Equal(t, "out:fast", s.Output)
	require.Equal(t, widget.PhaseSettled, s.Phase)
}

func TestTranslate_FailureKeepsPriorResult(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	require.NoError(t, h.w.Edit("hello"))
	require.NoError(t, h.w.Translate(context.Background()))

	upstream := errors.New("upstream status 502")
	h.translator.fn = func(context.Context, model.TranslationRequest) (*model.TranslationResult, error) {
		return nil, upstream
	}
	require.NoError(t, h.w.Edit("hello again"))
	require.ErrorIs(t, h.w.Translate(context.Background()), upstream)

	s := h.w.State()
	require.Equal(t, widget.PhaseError, s.Phase)
	require.Equal(t, "[ja] hello", s.Output)
	require.Empty(t, h.notifier.messages())
}

func TestSwap_ExchangesBothPairs(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour, Source: "en", Target: "de"})

	require.NoError(t, h.w.Edit("good morning"))
	require.NoError(t, h.w.Translate(context.Background()))
	before := h.w.State()

	h.w.Swap()
	after := h.w.State()
	require.Equal(t, before.Output, after.Input)
	require.Equal(t, before.Input, after.Output)
	require.Equal(t, before.Target, after.Source)
	require.Equal(t, before.Source, after.Target)
	require.Equal(t, widget.PhaseSettled, after.Phase)

	n, _ := h.w.Counter()
	require.Equal(t, len([]rune(after.Input)), n)
}

func TestSwap_InvalidatesPendingAndInFlight(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: 30 * time.Millisecond})

	release := make(chan struct{})
	h.translator.fn = func(context.Context, model.TranslationRequest) (*model.TranslationResult, error) {
		<-release
		return &model.TranslationResult{TranslatedText: "late"}, nil
	}

	require.NoError(t, h.w.Edit("hola"))
	errCh := make(chan error, 1)
	go func() { errCh <- h.w.Translate(context.Background()) }()
	<-h.translator.called

	require.NoError(t, h.w.Edit("hola amigo"))
	h.w.Swap()
	close(release)
	require.ErrorIs(t, <-errCh, widget.ErrSuperseded)

	time.Sleep(80 * time.Millisecond)
	s := h.w.State()
	require.Equal(t, "hola amigo", s.Output)
	require.Empty(t, s.Input)
	require.Equal(t, "ja", s.Source)
	require.Equal(t, "en", s.Target)
	require.Len(t, h.translator.requests(), 1)
}

func TestSetLanguages(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	h.w.SetSourceLanguage("it")
	h.w.SetTargetLanguage("es")
	require.NoError(t, h.w.Edit("ciao"))
	require.NoError(t, h.w.Translate(context.Background()))

	req := h.translator.requests()[0]
	require.Equal(t, "it", req.SourceLanguage)
	require.Equal(t, "es", req.TargetLanguage)
}

func TestSpeak_ToggleAndLateEnd(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	require.NoError(t, h.w.Speak("hallo", "de"))
	require.True(t, h.w.State().Speaking)
	require.Equal(t, []string{"de-DE"}, h.speaker.locales)

	// Second call while speaking cancels instead of starting a new utterance.
	require.NoError(t, h.w.Speak("hallo", "de"))
	require.False(t, h.w.State().Speaking)
	require.Equal(t, 1, h.speaker.cancelled)
	require.Len(t, h.speaker.texts, 1)

	require.NoError(t, h.w.Speak("ciao", "it"))
	require.True(t, h.w.State().Speaking)

	// The cancelled utterance reports its end late.
	h.speaker.end(0)
	require.True(t, h.w.State().Speaking)

	h.speaker.end(1)
	require.False(t, h.w.State().Speaking)
}

func TestSpeak_FailureReturnsToIdle(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})
	h.speaker.err = errors.New("no audio device")

	require.Error(t, h.w.Speak("hello", "en"))
	require.False(t, h.w.State().Speaking)
}

func TestListen_AppliesTranscriptAsEdit(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour, Source: "ja"})

	require.NoError(t, h.w.Listen(context.Background()))
	require.Equal(t, "ja-JP", <-h.recognizer.locales)
	require.True(t, h.w.State().Listening)
	require.Equal(t, []string{widget.MsgListening}, h.notifier.messages())

	h.recognizer.transcript <- "おはよう"
	waitFor(t, func() bool { return h.w.State().Input == "おはよう" })

	s := h.w.State()
	require.False(t, s.Listening)
	require.Equal(t, widget.PhasePending, s.Phase)
}

func TestListen_ToggleCancelsSession(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour, Source: "xx"})

	require.NoError(t, h.w.Listen(context.Background()))
	require.Equal(t, widget.DefaultLocale, <-h.recognizer.locales)

	require.NoError(t, h.w.Listen(context.Background()))
	require.False(t, h.w.State().Listening)

	h.recognizer.transcript <- "ignored"
	time.Sleep(30 * time.Millisecond)
	require.Empty(t, h.w.State().Input)
}

func TestListen_FailureIsLoggedOnly(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})
	h.recognizer.err = errors.New("microphone unavailable")

	require.NoError(t, h.w.Listen(context.Background()))
	<-h.recognizer.locales
	waitFor(t, func() bool { return !h.w.State().Listening })

	require.Empty(t, h.w.State().Input)
	require.Equal(t, []string{widget.MsgListening}, h.notifier.messages())
}

func TestCopy(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: time.Hour})

	require.NoError(t, h.w.Copy("こんにちは"))
	require.Equal(t, "こんにちは", h.clipboard.text)
	require.Equal(t, []string{widget.MsgCopied}, h.notifier.messages())

	h.clipboard.err = errors.New("clipboard locked")
	require.Error(t, h.w.Copy("again"))
	require.Equal(t, []string{widget.MsgCopied}, h.notifier.messages())
}

func TestMissingCapabilities(t *testing.T) {
	w, err := widget.New(widget.Options{Translator: newFakeTranslator()})
	require.NoError(t, err)
	defer w.Close()

	require.ErrorIs(t, w.Speak("x", "en"), widget.ErrNoCapability)
	require.ErrorIs(t, w.Listen(context.Background()), widget.ErrNoCapability)
	require.ErrorIs(t, w.Copy("x"), widget.ErrNoCapability)
}

func TestOnChange_ReceivesSnapshots(t *testing.T) {
	var mu sync.Mutex
	var revisions []uint64
	tr := newFakeTranslator()
	w, err := widget.New(widget.Options{
		Translator: tr,
		Debounce:   time.Hour,
		OnChange: func(s widget.State) {
			mu.Lock()
			revisions = append(revisions, s.Revision)
			mu.Unlock()
		},
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Edit("hi"))
	w.SetTargetLanguage("de")
	w.Swap()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []uint64{1, 2, 3}, revisions)
}

func TestClose_StopsPendingDebounce(t *testing.T) {
	h := newHarness(t, widget.Options{Debounce: 20 * time.Millisecond})

	require.NoError(t, h.w.Edit("hello"))
	h.w.Close()
	time.Sleep(60 * time.Millisecond)

	require.Empty(t, h.translator.requests())
	require.ErrorIs(t, h.w.Edit("more"), widget.ErrWidgetShutdown)
}

func TestLocaleFor(t *testing.T) {
	cases := map[string]string{
		"it": "it-IT",
		"es": "es-ES",
		"de": "de-DE",
		"ja": "ja-JP",
		"ar": "ar-SA",
		"hi": "hi-IN",
		"en": "en-US",
		"JA": "ja-JP",
		"fr": "en-US",
		"":   "en-US",
	}
	for code, want := range cases {
		require.Equal(t, want, widget.LocaleFor(code), "code %q", code)
	}
}
