package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
	"lingo/backend/internal/service/translator"
	"lingo/backend/internal/telemetry"
)

//go:generate mockgen -destination=mock/mock_service.go -package=mock lingo/backend/internal/service TranslateService,HealthService

// TranslateService forwards language and translation requests to the
// configured provider. It performs no validation, retries or caching.
type TranslateService interface {
	// ProviderName returns the name of the configured provider.
	ProviderName() string
	// Languages fetches the provider's language list.
	Languages(ctx context.Context) (*model.LanguageList, error)
	// Translate performs one upstream translation.
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
}

type translateService struct {
	provider translator.Provider
	timeout  time.Duration
	tracer   trace.Tracer
}

// NewTranslateService wraps provider. A non-positive timeout disables the
// per-call deadline.
func NewTranslateService(provider translator.Provider, timeout time.Duration) TranslateService {
	return &translateService{
		provider: provider,
		timeout:  timeout,
		tracer:   telemetry.Tracer(),
	}
}

func (s *translateService) ProviderName() string {
	return s.provider.Name()
}

func (s *translateService) Languages(ctx context.Context) (*model.LanguageList, error) {
	ctx, span := s.tracer.Start(ctx, "translate.languages",
		trace.WithAttributes(attribute.String("lingo.provider", s.provider.Name())))
	defer span.End()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	list, err := s.provider.Languages(ctx)
	if err != nil {
		err = classify(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("languages fetch failed", "module", "service", "action", "fetch", "resource", "languages", "result", "failed", "provider", s.provider.Name(), "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("lingo.languages", len(list.Languages)))
	logger.Debug("languages fetched", "module", "service", "action", "fetch", "resource", "languages", "result", "ok", "provider", s.provider.Name(), "count", len(list.Languages), "duration_ms", time.Since(start).Milliseconds())
	return list, nil
}

func (s *translateService) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	ctx, span := s.tracer.Start(ctx, "translate.translate",
		trace.WithAttributes(
			attribute.String("lingo.provider", s.provider.Name()),
			attribute.String("lingo.source", req.SourceLanguage),
			attribute.String("lingo.target", req.TargetLanguage),
			attribute.Int("lingo.chars", utf8.RuneCountInString(req.Text)),
		))
	defer span.End()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	res, err := s.provider.Translate(ctx, req)
	if err != nil {
		err = classify(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Warn("translation failed", "module", "service", "action", "translate", "resource", "translation", "result", "failed", "provider", s.provider.Name(), "source", req.SourceLanguage, "target", req.TargetLanguage, "duration_ms", time.Since(start).Milliseconds(), "error", err)
		return nil, err
	}

	logger.Debug("translation completed", "module", "service", "action", "translate", "resource", "translation", "result", "ok", "provider", s.provider.Name(), "source", req.SourceLanguage, "target", req.TargetLanguage, "chars", utf8.RuneCountInString(req.Text), "duration_ms", time.Since(start).Milliseconds())
	return res, nil
}

func (s *translateService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// classify tags deadline failures so callers can tell them from upstream errors.
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	return err
}
