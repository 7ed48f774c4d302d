package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 80; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestCalculateBackoff_LongBase(t *testing.T) {
	if got := calculateBackoff(3, time.Minute); got != time.Minute {
		t.Fatalf("calculateBackoff with base above cap = %v, want 1m", got)
	}
}

func TestStartPoller_RefreshesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})

	StartPoller(ctx, 5*time.Millisecond, Source{
		Name: "books",
		Refresh: func(context.Context) error {
			if calls.Add(1) == 3 {
				close(done)
			}
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not refresh three times")
	}
	cancel()
}

func TestStartPoller_SkipsWhileBusy(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var busy atomic.Bool
	busy.Store(true)
	var calls atomic.Int32

	StartPoller(ctx, 5*time.Millisecond, Source{
		Name:    "authors",
		Refresh: func(context.Context) error { calls.Add(1); return errors.New("unused") },
		Busy:    busy.Load,
	})

	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("refreshed %d times while busy, want 0", got)
	}
}

func TestStartPoller_DisabledInterval(t *testing.T) {
	var calls atomic.Int32
	StartPoller(context.Background(), 0, Source{
		Name:    "books",
		Refresh: func(context.Context) error { calls.Add(1); return nil },
	})
	time.Sleep(20 * time.Millisecond)
	if calls.Load() != 0 {
		t.Fatal("zero interval should not start a poller")
	}
}
