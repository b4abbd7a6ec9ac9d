// Package translator holds the translation backends behind one Provider
// interface. The backend is selected by configuration so the HTTP routes and
// the widget engine stay provider-agnostic.
package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lingo/backend/internal/model"
	"lingo/backend/internal/network"
	"lingo/backend/internal/service/ai"
)

//go:generate mockgen -destination=mock/mock_provider.go -package=mock lingo/backend/internal/service/translator Provider

// Provider is a translation backend.
type Provider interface {
	// Name returns the provider name.
	Name() string
	// Languages returns the languages the backend can translate between.
	Languages(ctx context.Context) (*model.LanguageList, error)
	// Translate performs exactly one upstream translation call.
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
}

// Provider names accepted by NewProvider.
const (
	ProviderLibreTranslate = "libretranslate"
	ProviderMyMemory       = "mymemory"
	ProviderGoogle         = "google"
	ProviderOpenAI         = ai.ProviderOpenAI
	ProviderAnthropic      = ai.ProviderAnthropic
	ProviderCompatible     = ai.ProviderCompatible
)

const maxUpstreamBody = 4 << 20

var (
	ErrInvalidProvider  = errors.New("invalid provider")
	ErrEmptyTranslation = errors.New("upstream returned no translation")
	ErrDecode           = errors.New("decode upstream response")
)

// UpstreamError is returned when the upstream answered with a failure.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: upstream status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: upstream status %d", e.Provider, e.StatusCode)
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	BaseURL     string // libretranslate, mymemory, compatible
	APIKey      string // libretranslate (optional), openai, anthropic, compatible
	Email       string // mymemory (optional, raises the free quota)
	Model       string // openai, anthropic, compatible
	Credentials string // google service account file (optional)
	Timeout     time.Duration
	Clients     *network.ClientFactory
}

// NewProvider creates the provider named by cfg.Provider. An empty name
// selects LibreTranslate.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.Clients == nil {
		cfg.Clients = network.NewClientFactory(nil)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	httpClient := cfg.Clients.NewHTTPClient(ctx, cfg.Timeout)

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderLibreTranslate:
		return NewLibreTranslateProvider(cfg.BaseURL, cfg.APIKey, httpClient), nil
	case ProviderMyMemory:
		return NewMyMemoryProvider(cfg.BaseURL, cfg.Email, httpClient), nil
	case ProviderGoogle:
		p, err := NewGoogleProvider(ctx, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		return p, nil
	case ProviderOpenAI, ProviderAnthropic, ProviderCompatible:
		chat, err := ai.NewProvider(ai.Config{
			Provider:   strings.ToLower(strings.TrimSpace(cfg.Provider)),
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s provider: %w", cfg.Provider, err)
		}
		return NewLLMProvider(chat), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidProvider, cfg.Provider)
	}
}
