package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AppName    = "Lingo"
	AppVersion = "1.0.0"
	AppRepo    = "https://github.com/lingo-translate/lingo"
)

// UserAgent identifies Lingo to upstream translation services.
var UserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + "; +" + AppRepo + ")"

// Defaults shared by the server and the terminal client.
const (
	DefaultProvider          = "libretranslate"
	DefaultLibreTranslateURL = "https://libretranslate.de"
	DefaultMyMemoryURL       = "https://api.mymemory.translated.net"
	DefaultUpstreamTimeout   = 30 * time.Second
)

type Config struct {
	Addr      string `env:"LINGO_ADDR" envDefault:":8080"`
	StaticDir string `env:"LINGO_STATIC_DIR"`
	LogLevel  string `env:"LINGO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LINGO_LOG_FORMAT" envDefault:"text"`

	Provider          string        `env:"LINGO_PROVIDER" envDefault:"libretranslate"`
	LibreTranslateURL string        `env:"LINGO_LIBRETRANSLATE_URL" envDefault:"https://libretranslate.de"`
	LibreTranslateKey string        `env:"LINGO_LIBRETRANSLATE_API_KEY"`
	MyMemoryURL       string        `env:"LINGO_MYMEMORY_URL" envDefault:"https://api.mymemory.translated.net"`
	MyMemoryEmail     string        `env:"LINGO_MYMEMORY_EMAIL"`
	GoogleCredentials string        `env:"LINGO_GOOGLE_CREDENTIALS"`
	LLMAPIKey         string        `env:"LINGO_LLM_API_KEY"`
	LLMBaseURL        string        `env:"LINGO_LLM_BASE_URL"`
	LLMModel          string        `env:"LINGO_LLM_MODEL"`
	UpstreamTimeout   time.Duration `env:"LINGO_UPSTREAM_TIMEOUT" envDefault:"30s"`
	UpstreamProxy     string        `env:"LINGO_UPSTREAM_PROXY"`

	HealthInterval time.Duration `env:"LINGO_HEALTH_INTERVAL" envDefault:"5m"`
	OTelEndpoint   string        `env:"LINGO_OTEL_ENDPOINT"`
}

// Load reads the server configuration from LINGO_* environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = detectStaticDir()
	}
	cfg.StaticDir = filepath.Clean(cfg.StaticDir)
	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = DefaultUpstreamTimeout
	}
	return cfg, nil
}

func detectStaticDir() string {
	candidates := []string{
		"./web/dist",
		"../web/dist",
	}
	for _, candidate := range candidates {
		indexPath := filepath.Join(candidate, "index.html")
		if info, err := os.Stat(indexPath); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return "./web/dist"
}
