package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunOnce(t *testing.T) {
	s := NewScheduler()

	var calls int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("counter-2", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})

	// A failing job must not stop the others.
	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestStartRunsJobImmediately(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	var once int32
	s.AddJob("immediate", time.Hour, func(ctx context.Context) error {
		if atomic.CompareAndSwapInt32(&once, 0, 1) {
			close(done)
		}
		return nil
	})

	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not fire on Start")
	}
}

func TestStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()

	s.AddJob("ticker", 10*time.Millisecond, func(ctx context.Context) error {
		return nil
	})

	s.Start()
	time.Sleep(50 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
