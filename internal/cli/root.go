// Package cli implements the lingo terminal client: one-shot translation,
// language listing and an interactive widget session.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lingo/backend/internal/client"
	"lingo/backend/internal/config"
	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
	"lingo/backend/internal/network"
	"lingo/backend/internal/service/ai"
	"lingo/backend/internal/service/translator"
	"lingo/backend/internal/widget"
)

// Backends selectable with --backend.
const (
	BackendServer = "server"
	BackendDirect = "direct"
)

// Settings are the resolved flag, environment and config file values.
type Settings struct {
	Backend   string
	ServerURL string
	Provider  string
	BaseURL   string
	APIKey    string
	Email     string
	Model     string
	From      string
	To        string
	MaxChars  int
	Debounce  time.Duration
	Timeout   time.Duration
	Proxy     string
	LogLevel  string

	WhisperKey     string
	WhisperBaseURL string
	ESpeakBinary   string
}

// languageSource lists languages for the `languages` command.
type languageSource interface {
	Languages(ctx context.Context) ([]model.Language, error)
}

type providerLanguages struct {
	provider translator.Provider
}

func (p providerLanguages) Languages(ctx context.Context) ([]model.Language, error) {
	list, err := p.provider.Languages(ctx)
	if err != nil {
		return nil, err
	}
	return list.Languages, nil
}

// backend is the translator plus language source selected by --backend.
type backend struct {
	translator widget.Translator
	languages  languageSource
	close      func() error
}

type app struct {
	v       *viper.Viper
	cfgFile string

	// newBackend is replaced in tests.
	newBackend func(ctx context.Context, s Settings) (*backend, error)
}

// NewRootCommand builds the lingo command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}
	a.newBackend = a.buildBackend
	return a.rootCommand()
}

// Execute runs the lingo command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lingo",
		Short: "Terminal translation widget",
		Long: `lingo translates text through a Lingo server or directly against a
translation provider.

Example:
  lingo translate --to de "good morning"
  lingo languages --backend direct --provider mymemory
  lingo interactive --from en --to ja`,
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			logger.Init(logger.Options{
				Level:  logger.ParseLevel(a.v.GetString("log-level")),
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.lingo.yaml)")
	flags.String("backend", BackendServer, "Translation backend: server or direct")
	flags.String("server-url", client.DefaultServerURL, "Lingo server URL (server backend)")
	flags.String("provider", config.DefaultProvider, "Provider for the direct backend: libretranslate, mymemory, google, openai, anthropic, compatible")
	flags.String("base-url", "", "Provider base URL (direct backend)")
	flags.String("api-key", "", "Provider API key (direct backend)")
	flags.String("email", "", "MyMemory contact email (direct backend)")
	flags.String("model", "", "LLM model (direct backend)")
	flags.String("from", widget.DefaultSource, "Source language code")
	flags.String("to", widget.DefaultTarget, "Target language code")
	flags.Int("max-chars", widget.DefaultMaxChars, "Input character cap")
	flags.Duration("debounce", widget.DefaultDebounce, "Quiet period before live translation")
	flags.Duration("timeout", config.DefaultUpstreamTimeout, "Request timeout")
	flags.String("proxy", "", "Outbound proxy URL (http, https or socks5)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.String("whisper-key", "", "OpenAI API key for dictation")
	flags.String("whisper-base-url", "", "OpenAI compatible base URL for dictation")
	flags.String("espeak", DefaultESpeakBinary, "espeak-ng binary used for speech")

	_ = a.v.BindPFlags(flags)

	root.AddCommand(a.translateCommand(), a.languagesCommand(), a.interactiveCommand())
	return root
}

func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.AddConfigPath(".")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".lingo")
	}

	a.v.SetEnvPrefix("LINGO")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && a.cfgFile == "" {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	logger.Debug("config file loaded", "module", "cli", "action", "load", "resource", "config", "result", "ok", "path", a.v.ConfigFileUsed())
	return nil
}

func (a *app) settings() Settings {
	return Settings{
		Backend:        strings.ToLower(a.v.GetString("backend")),
		ServerURL:      a.v.GetString("server-url"),
		Provider:       a.v.GetString("provider"),
		BaseURL:        a.v.GetString("base-url"),
		APIKey:         a.v.GetString("api-key"),
		Email:          a.v.GetString("email"),
		Model:          a.v.GetString("model"),
		From:           a.v.GetString("from"),
		To:             a.v.GetString("to"),
		MaxChars:       a.v.GetInt("max-chars"),
		Debounce:       a.v.GetDuration("debounce"),
		Timeout:        a.v.GetDuration("timeout"),
		Proxy:          a.v.GetString("proxy"),
		LogLevel:       a.v.GetString("log-level"),
		WhisperKey:     a.v.GetString("whisper-key"),
		WhisperBaseURL: a.v.GetString("whisper-base-url"),
		ESpeakBinary:   a.v.GetString("espeak"),
	}
}

func (a *app) buildBackend(ctx context.Context, s Settings) (*backend, error) {
	clients := network.NewClientFactory(network.StaticProxy(s.Proxy))

	switch s.Backend {
	case "", BackendServer:
		c := client.New(s.ServerURL, clients.NewHTTPClient(ctx, s.Timeout))
		return &backend{translator: c, languages: c, close: func() error { return nil }}, nil
	case BackendDirect:
		p, err := translator.NewProvider(ctx, translator.Config{
			Provider: s.Provider,
			BaseURL:  s.BaseURL,
			APIKey:   s.APIKey,
			Email:    s.Email,
			Model:    s.Model,
			Timeout:  s.Timeout,
			Clients:  clients,
		})
		if err != nil {
			return nil, err
		}
		closeFn := func() error { return nil }
		if closer, ok := p.(io.Closer); ok {
			closeFn = closer.Close
		}
		return &backend{translator: p, languages: providerLanguages{provider: p}, close: closeFn}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", s.Backend)
	}
}

// newRecognizer returns nil when no Whisper key is configured.
func newRecognizer(ctx context.Context, s Settings) *FileRecognizer {
	if s.WhisperKey == "" {
		return nil
	}
	httpClient := network.NewClientFactory(network.StaticProxy(s.Proxy)).NewHTTPClient(ctx, s.Timeout)
	t, err := ai.NewTranscriber(s.WhisperKey, s.WhisperBaseURL, httpClient)
	if err != nil {
		logger.Warn("dictation disabled", "module", "cli", "action", "init", "resource", "dictation", "result", "failed", "error", err)
		return nil
	}
	return NewFileRecognizer(t)
}
