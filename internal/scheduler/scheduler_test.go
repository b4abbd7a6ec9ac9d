package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"lingo/backend/internal/scheduler"
	"lingo/backend/internal/service/mock"
)

func TestScheduler_ProbesImmediatelyAndOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthService(ctrl)

	probed := make(chan struct{}, 8)
	health.EXPECT().Probe(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		require.True(t, ok)
		probed <- struct{}{}
		return nil
	}).MinTimes(2)

	s := scheduler.New(health, 20*time.Millisecond)
	s.Start()
	for i := 0; i < 2; i++ {
		select {
		case <-probed:
		case <-time.After(time.Second):
			t.Fatal("probe not run")
		}
	}
	s.Stop()
	s.Stop()
}

func TestScheduler_StopCancelsProbe(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthService(ctrl)

	started := make(chan struct{})
	health.EXPECT().Probe(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	s := scheduler.New(health, time.Hour)
	s.Start()
	<-started

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the running probe")
	}
}

func TestScheduler_DisabledInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthService(ctrl)

	s := scheduler.New(health, 0)
	s.Start()
	s.Stop()
}
