package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"lingo/backend/internal/model"
)

// DefaultMyMemoryURL is the public MyMemory API.
const DefaultMyMemoryURL = "https://api.mymemory.translated.net"

// myMemoryAutodetect is MyMemory's source language wildcard.
const myMemoryAutodetect = "Autodetect"

// MyMemoryProvider calls the MyMemory GET API. Replies are normalized to
// {translatedText} since MyMemory's envelope differs from the route format.
type MyMemoryProvider struct {
	baseURL string
	email   string
	client  *http.Client
}

// NewMyMemoryProvider creates a MyMemory provider. email is optional.
func NewMyMemoryProvider(baseURL, email string, client *http.Client) *MyMemoryProvider {
	if baseURL == "" {
		baseURL = DefaultMyMemoryURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &MyMemoryProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		client:  client,
	}
}

func (p *MyMemoryProvider) Name() string {
	return ProviderMyMemory
}

func (p *MyMemoryProvider) Languages(ctx context.Context) (*model.LanguageList, error) {
	return &model.LanguageList{Languages: StaticLanguages(DefaultLanguageCodes)}, nil
}

func (p *MyMemoryProvider) Translate(ctx context.Context, tr model.TranslationRequest) (*model.TranslationResult, error) {
	source := tr.SourceLanguage
	if source == "" || strings.EqualFold(source, "auto") {
		source = myMemoryAutodetect
	}

	query := url.Values{}
	query.Set("q", tr.Text)
	query.Set("langpair", source+"|"+tr.TargetLanguage)
	if p.email != "" {
		query.Set("de", p.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/get?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

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
		return nil, &UpstreamError{Provider: p.Name(), StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
	}

	// responseStatus is a number on success and sometimes a quoted string on errors.
	var decoded struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  json.Number `json:"responseStatus"`
		ResponseDetails string      `json:"responseDetails"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if status, err := strconv.Atoi(decoded.ResponseStatus.String()); err == nil && status != http.StatusOK {
		return nil, &UpstreamError{Provider: p.Name(), StatusCode: status, Message: decoded.ResponseDetails}
	}

	return &model.TranslationResult{TranslatedText: html.UnescapeString(decoded.ResponseData.TranslatedText)}, nil
}
