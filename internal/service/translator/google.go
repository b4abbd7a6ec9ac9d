package translator

import (
	"context"
	"fmt"
	"strings"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"

	"lingo/backend/internal/model"
)

// GoogleProvider uses Cloud Translation v2. Credentials come from the given
// service account file or the ambient application default credentials.
type GoogleProvider struct {
	client *translate.Client
}

// NewGoogleProvider creates a Cloud Translation client.
func NewGoogleProvider(ctx context.Context, credentialsFile string) (*GoogleProvider, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create google translate client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

func (p *GoogleProvider) Name() string {
	return ProviderGoogle
}

// Close releases the underlying client.
func (p *GoogleProvider) Close() error {
	return p.client.Close()
}

func (p *GoogleProvider) Languages(ctx context.Context) (*model.LanguageList, error) {
	supported, err := p.client.SupportedLanguages(ctx, language.English)
	if err != nil {
		return nil, fmt.Errorf("%s languages: %w", p.Name(), err)
	}

	codes := make([]string, 0, len(supported))
	for _, l := range supported {
		codes = append(codes, l.Tag.String())
	}
	langs := make([]model.Language, 0, len(supported))
	for _, l := range supported {
		langs = append(langs, model.Language{Code: l.Tag.String(), Name: l.Name, Targets: codes})
	}
	return &model.LanguageList{Languages: langs}, nil
}

func (p *GoogleProvider) Translate(ctx context.Context, tr model.TranslationRequest) (*model.TranslationResult, error) {
	target, err := language.Parse(tr.TargetLanguage)
	if err != nil {
		return nil, fmt.Errorf("%s target language %q: %w", p.Name(), tr.TargetLanguage, err)
	}

	opts := &translate.Options{Format: translate.Text}
	if tr.SourceLanguage != "" && !strings.EqualFold(tr.SourceLanguage, "auto") {
		source, err := language.Parse(tr.SourceLanguage)
		if err != nil {
			return nil, fmt.Errorf("%s source language %q: %w", p.Name(), tr.SourceLanguage, err)
		}
		opts.Source = source
	}

	translations, err := p.client.Translate(ctx, []string{tr.Text}, target, opts)
	if err != nil {
		return nil, fmt.Errorf("%s translate: %w", p.Name(), err)
	}
	if len(translations) == 0 {
		return nil, ErrEmptyTranslation
	}
	return &model.TranslationResult{TranslatedText: translations[0].Text}, nil
}
