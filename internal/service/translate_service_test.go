package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lingo/backend/internal/model"
	"lingo/backend/internal/service"
	"lingo/backend/internal/service/translator/mock"
)

func TestTranslateService_Translate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("libretranslate").AnyTimes()

	req := model.TranslationRequest{Text: "hello", SourceLanguage: "en", TargetLanguage: "ja"}
	provider.EXPECT().
		Translate(gomock.Any(), req).
		Return(&model.TranslationResult{TranslatedText: "こんにちは", Raw: []byte(`{"translatedText":"こんにちは"}`)}, nil).
		Times(1)

	svc := service.NewTranslateService(provider, time.Second)
	res, err := svc.Translate(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "こんにちは", res.TranslatedText)
	require.NotEmpty(t, res.Raw)
}

func TestTranslateService_Translate_AppliesDeadline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("mymemory").AnyTimes()
	provider.EXPECT().
		Translate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ model.TranslationRequest) (*model.TranslationResult, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok, "expected per-call deadline")
			<-ctx.Done()
			return nil, ctx.Err()
		})

	svc := service.NewTranslateService(provider, 20*time.Millisecond)
	_, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "slow", SourceLanguage: "en", TargetLanguage: "de"})
	require.ErrorIs(t, err, service.ErrUpstreamTimeout)
}

func TestTranslateService_Translate_PassesErrorThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	upstream := errors.New("connection refused")
	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("libretranslate").AnyTimes()
	provider.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(nil, upstream)

	svc := service.NewTranslateService(provider, 0)
	_, err := svc.Translate(context.Background(), model.TranslationRequest{Text: "x"})
	require.ErrorIs(t, err, upstream)
	require.NotErrorIs(t, err, service.ErrUpstreamTimeout)
}

func TestTranslateService_Languages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("libretranslate").AnyTimes()
	provider.EXPECT().Languages(gomock.Any()).Return(&model.LanguageList{
		Languages: []model.Language{{Code: "en", Name: "English"}},
		Raw:       []byte(`[{"code":"en","name":"English"}]`),
	}, nil)

	svc := service.NewTranslateService(provider, time.Second)
	require.Equal(t, "libretranslate", svc.ProviderName())

	list, err := svc.Languages(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Languages, 1)
	require.Equal(t, `[{"code":"en","name":"English"}]`, string(list.Raw))
}

func TestTranslateService_Languages_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock.NewMockProvider(ctrl)
	provider.EXPECT().Name().Return("libretranslate").AnyTimes()
	provider.EXPECT().Languages(gomock.Any()).Return(nil, errors.New("dns failure"))

	svc := service.NewTranslateService(provider, time.Second)
	_, err := svc.Languages(context.Background())
	require.EqualError(t, err, "dns failure")
}
