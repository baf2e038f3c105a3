package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed delay between fetches using a token bucket.
// With burst 1 and a refill interval equal to the delay, the first Wait
// returns immediately and every later Wait blocks for the configured
// delay since the previous fetch.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given inter-fetch delay.
// A zero delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next fetch is allowed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
