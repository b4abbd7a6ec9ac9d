package service

import (
	"context"
	"sync"
	"time"

	"lingo/backend/internal/logger"
	"lingo/backend/internal/model"
)

// HealthService probes the upstream provider and remembers the outcome.
type HealthService interface {
	// Probe performs one read-only upstream call and records the result.
	Probe(ctx context.Context) error
	// Status returns the last recorded result.
	Status() model.HealthStatus
}

type healthService struct {
	translate TranslateService
	now       func() time.Time

	mu     sync.RWMutex
	status model.HealthStatus
}

// NewHealthService creates a HealthService. Until the first probe the status
// reports healthy with a zero CheckedAt.
func NewHealthService(translate TranslateService) HealthService {
	return &healthService{
		translate: translate,
		now:       time.Now,
		status: model.HealthStatus{
			Provider: translate.ProviderName(),
			Healthy:  true,
		},
	}
}

func (s *healthService) Probe(ctx context.Context) error {
	_, err := s.translate.Languages(ctx)

	status := model.HealthStatus{
		Provider:  s.translate.ProviderName(),
		Healthy:   err == nil,
		CheckedAt: s.now().UTC(),
	}
	if err != nil {
		status.Error = err.Error()
	}

	s.mu.Lock()
	prev := s.status
	s.status = status
	s.mu.Unlock()

	switch {
	case err != nil && prev.Healthy:
		logger.Warn("upstream unhealthy", "module", "service", "action", "probe", "resource", "health", "result", "failed", "provider", status.Provider, "error", err)
	case err == nil && !prev.Healthy:
		logger.Info("upstream recovered", "module", "service", "action", "probe", "resource", "health", "result", "ok", "provider", status.Provider)
	}
	return err
}

func (s *healthService) Status() model.HealthStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
