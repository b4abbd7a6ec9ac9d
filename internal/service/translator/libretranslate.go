package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"lingo/backend/internal/model"
)

// DefaultLibreTranslateURL is the public instance the widget was built against.
const DefaultLibreTranslateURL = "https://libretranslate.de"

// LibreTranslateProvider forwards to a LibreTranslate instance. Its replies
// already match the public route format, so raw bodies are relayed.
type LibreTranslateProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLibreTranslateProvider creates a LibreTranslate provider. An empty
// baseURL selects DefaultLibreTranslateURL.
func NewLibreTranslateProvider(baseURL, apiKey string, client *http.Client) *LibreTranslateProvider {
	if baseURL == "" {
		baseURL = DefaultLibreTranslateURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &LibreTranslateProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (p *LibreTranslateProvider) Name() string {
	return ProviderLibreTranslate
}

func (p *LibreTranslateProvider) Languages(ctx context.Context) (*model.LanguageList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/languages", nil)
	if err != nil {
		return nil, fmt.Errorf("build languages request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := p.do(req)
	if err != nil {
		return nil, err
	}

	var langs []model.Language
	if err := json.Unmarshal(body, &langs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &model.LanguageList{Languages: langs, Raw: body}, nil
}

func (p *LibreTranslateProvider) Translate(ctx context.Context, tr model.TranslationRequest) (*model.TranslationResult, error) {
	form := url.Values{}
	form.Set("q", tr.Text)
	form.Set("source", tr.SourceLanguage)
	form.Set("target", tr.TargetLanguage)
	if p.apiKey != "" {
		form.Set("api_key", p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/translate", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := p.do(req)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &model.TranslationResult{TranslatedText: decoded.TranslatedText, Raw: body}, nil
}

func (p *LibreTranslateProvider) do(req *http.Request) ([]byte, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", p.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", p.Name(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body),
		}
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not JSON", ErrDecode)
	}
	return body, nil
}

// upstreamMessage extracts {"error": "..."} or falls back to the trimmed body.
func upstreamMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
