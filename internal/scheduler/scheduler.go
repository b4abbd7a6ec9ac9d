// Package scheduler runs the periodic upstream health probe.
package scheduler

import (
	"context"
	"sync"
	"time"

	"lingo/backend/internal/logger"
	"lingo/backend/internal/service"
)

// DefaultProbeTimeout bounds one probe when the interval is longer.
const DefaultProbeTimeout = 30 * time.Second

type Scheduler struct {
	health     service.HealthService
	interval   time.Duration
	stopCh     chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the probe in progress
	mu         sync.Mutex         // protects cancelFunc
}

func New(health service.HealthService, interval time.Duration) *Scheduler {
	return &Scheduler{
		health:   health,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start probes immediately and then once per interval. A non-positive
// interval disables probing.
func (s *Scheduler) Start() {
	if s.interval <= 0 {
		logger.Info("health probe disabled", "module", "scheduler", "action", "probe", "resource", "health", "result", "skipped")
		return
	}
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "probe", "resource", "health", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

// Stop cancels the probe in progress and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		close(s.stopCh)
		if s.cancelFunc != nil {
			s.cancelFunc()
		}
		s.mu.Unlock()

		s.wg.Wait()
		logger.Info("scheduler stopped", "module", "scheduler", "action", "probe", "resource", "health", "result", "ok")
	})
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	s.probe()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.probe()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) probe() {
	timeout := s.interval
	if timeout > DefaultProbeTimeout {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)

	s.mu.Lock()
	select {
	case <-s.stopCh:
		s.mu.Unlock()
		cancel()
		return
	default:
	}
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	if err := s.health.Probe(ctx); err != nil && ctx.Err() == context.Canceled {
		logger.Warn("health probe cancelled", "module", "scheduler", "action", "probe", "resource", "health", "result", "cancelled")
	}
}
