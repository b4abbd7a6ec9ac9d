package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
	"lingo/backend/internal/notify"
	"lingo/backend/internal/widget"
)

func (a *app) translateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text once",
		Long: `Translate the arguments, or stdin when no arguments are given, and print
the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = strings.TrimRight(string(data), "\r\n")
			}

			s := a.settings()
			be, err := a.newBackend(cmd.Context(), s)
			if err != nil {
				return err
			}
			defer be.close()

			sess, err := newSession(s, be, nil, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			if err := sess.w.Edit(text); err != nil {
				return err
			}
			if err := sess.w.Translate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sess.w.State().Output)
			return nil
		},
	}
}

func (a *app) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the available languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			be, err := a.newBackend(cmd.Context(), a.settings())
			if err != nil {
				return err
			}
			defer be.close()

			langs, err := be.languages.Languages(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, l := range langs {
				fmt.Fprintf(out, "%-6s %s\n", l.Code, l.Name)
			}
			return nil
		},
	}
}

func (a *app) interactiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run an interactive widget session",
		Long: `Each input line replaces the text and is translated after the debounce
period. Commands:
  :go              translate now
  :swap            swap text and languages
  :from <code>     set the source language
  :to <code>       set the target language
  :speak           speak the input      :speak-out  speak the translation
  :copy            copy the input       :copy-out   copy the translation
  :listen <file>   dictate from an audio file (toggle)
  :count           show the character counter
  :quit            leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s := a.settings()
			be, err := a.newBackend(ctx, s)
			if err != nil {
				return err
			}
			defer be.close()

			caps := &capabilities{
				speaker:    NewESpeakSpeaker(s.ESpeakBinary, 0),
				clipboard:  SystemClipboard{},
				recognizer: newRecognizer(ctx, s),
			}
			sess, err := newSession(s, be, caps, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			return sess.run(ctx, cmd.InOrStdin())
		},
	}
}

type capabilities struct {
	speaker    widget.Speaker
	clipboard  widget.Clipboard
	recognizer *FileRecognizer
}

// session is one widget wired to terminal output.
type session struct {
	w          *widget.Widget
	notes      *notify.Center
	recognizer *FileRecognizer

	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	printed  uint64
	lastSeen string
}

func newSession(s Settings, be *backend, caps *capabilities, out, errOut io.Writer) (*session, error) {
	sess := &session{out: out, errOut: errOut}

	notes, err := notify.New(notify.Options{OnShow: sess.showNotification})
	if err != nil {
		return nil, err
	}
	sess.notes = notes

	opts := widget.Options{
		Translator: be.translator,
		Notifier:   notes,
		MaxChars:   s.MaxChars,
		Debounce:   s.Debounce,
		Source:     s.From,
		Target:     s.To,
	}
	if caps != nil {
		opts.Speaker = caps.speaker
		opts.Clipboard = caps.clipboard
		if caps.recognizer != nil {
			opts.Recognizer = caps.recognizer
			sess.recognizer = caps.recognizer
		}
		opts.OnChange = sess.render
	}

	w, err := widget.New(opts)
	if err != nil {
		notes.Close()
		return nil, err
	}
	sess.w = w
	return sess, nil
}

func (s *session) close() {
	s.w.Close()
	s.notes.Close()
}

var errQuit = errors.New("quit")

func (s *session) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if err := s.handle(ctx, scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			s.printErr(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Flush a pending live translation before leaving.
	if s.w.State().Phase == widget.PhasePending {
		if err := s.w.Translate(ctx); err != nil && !errors.Is(err, widget.ErrEmptyInput) {
			s.printErr(err)
		}
	}
	return nil
}

func (s *session) handle(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, ":") {
		return s.w.Edit(line)
	}

	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	st := s.w.State()

	switch name {
	case "quit", "q":
		return errQuit
	case "go":
		return s.w.Translate(ctx)
	case "swap":
		s.w.Swap()
		st = s.w.State()
		s.printf("%s→%s  %q → %q\n", st.Source, st.Target, st.Input, st.Output)
		return nil
	case "from":
		if arg == "" {
			return errors.New("usage: :from <code>")
		}
		s.w.SetSourceLanguage(arg)
		return nil
	case "to":
		if arg == "" {
			return errors.New("usage: :to <code>")
		}
		s.w.SetTargetLanguage(arg)
		return nil
	case "speak":
		return s.w.Speak(st.Input, st.Source)
	case "speak-out":
		return s.w.Speak(st.Output, st.Target)
	case "copy":
		return s.w.Copy(st.Input)
	case "copy-out":
		return s.w.Copy(st.Output)
	case "listen":
		if s.recognizer == nil {
			return fmt.Errorf("%w: set --whisper-key to enable dictation", widget.ErrNoCapability)
		}
		if arg != "" {
			s.recognizer.SetFile(arg)
		}
		return s.w.Listen(ctx)
	case "count":
		n, limit := s.w.Counter()
		s.printf("%d/%d\n", n, limit)
		return nil
	default:
		return fmt.Errorf("unknown command :%s", name)
	}
}

// render prints each new translation once.
func (s *session) render(st widget.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.Revision <= s.printed {
		return
	}
	s.printed = st.Revision
	if st.Phase == widget.PhaseSettled && st.Output != "" && st.Output != s.lastSeen {
		s.lastSeen = st.Output
		fmt.Fprintf(s.out, "→ %s\n", st.Output)
	}
}

func (s *session) showNotification(n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, "[%s] %s\n", n.Kind, n.Message)
}

func (s *session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}

func (s *session) printErr(err error) {
	logger.Debug("command failed", "module", "cli", "action", "request", "resource", "session", "result", "failed", "error", err)
	if errors.Is(err, widget.ErrTooLong) || errors.Is(err, widget.ErrEmptyInput) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.errOut, "error: %v\n", err)
}
