package translator

import (
	"context"
	"fmt"

	"lingo/backend/internal/model"
	"lingo/backend/internal/service/ai"
)

// LLMProvider translates with a chat model.
type LLMProvider struct {
	chat ai.Provider
}

// NewLLMProvider wraps a chat backend as a translation provider.
func NewLLMProvider(chat ai.Provider) *LLMProvider {
	return &LLMProvider{chat: chat}
}

func (p *LLMProvider) Name() string {
	return p.chat.Name()
}

func (p *LLMProvider) Languages(ctx context.Context) (*model.LanguageList, error) {
	return &model.LanguageList{Languages: StaticLanguages(DefaultLanguageCodes)}, nil
}

func (p *LLMProvider) Translate(ctx context.Context, tr model.TranslationRequest) (*model.TranslationResult, error) {
	source := tr.SourceLanguage
	if source != "" && source != "auto" {
		source = LanguageName(source)
	}
	prompt := ai.GetTranslateTextPrompt(source, LanguageName(tr.TargetLanguage))

	out, err := p.chat.Complete(ctx, prompt, ai.WrapInputSimple(tr.Text))
	if err != nil {
		return nil, fmt.Errorf("%s complete: %w", p.Name(), err)
	}
	text := ai.CleanOutput(out)
	if text == "" {
		return nil, ErrEmptyTranslation
	}
	return &model.TranslationResult{TranslatedText: text}, nil
}
