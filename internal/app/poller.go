package app

import (
	"context"
	"log"
	"time"
)

// maxBackoff caps the delay between refreshes after repeated failures.
const maxBackoff = 30 * time.Second

// Source is one list kept fresh by the poller.
type Source struct {
	Name    string
	Refresh func(context.Context) error
	// Busy reports a mutation in flight; the tick is skipped so the
	// refresh that follows the mutation is not raced.
	Busy func() bool
}

// StartPoller launches one background goroutine per source that refreshes
// it every interval, backing off while it keeps failing. It returns
// immediately.
func StartPoller(ctx context.Context, interval time.Duration, sources ...Source) {
	if interval <= 0 {
		return
	}
	for _, src := range sources {
		go poll(ctx, interval, src)
	}
}

func poll(ctx context.Context, interval time.Duration, src Source) {
	failures := 0
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if src.Busy == nil || !src.Busy() {
			if err := src.Refresh(ctx); err != nil {
				failures++
				log.Printf("%s poll failed (%d in a row): %v", src.Name, failures, err)
			} else {
				failures = 0
			}
		}

		next := calculateBackoff(failures, interval)
		if failures > 0 {
			log.Printf("%s poll backing off %v", src.Name, next)
		}
		timer.Reset(next)
	}
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff. A base above the cap is used as is.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
