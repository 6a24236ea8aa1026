package scrape

import (
	"context"

	"github.com/jmbacasno/mangago"
	"golang.org/x/time/rate"
)

var _ mangago.Limiter = (*Limiter)(nil)

// Limiter throttles requests against the listing site using a token
// bucket with a burst of 1, so fetches are spaced evenly rather than
// front-loaded. Every request targets the same host, so a single bucket
// suffices.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter allowing rps requests per second.
func NewLimiter(rps float64) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(rps), 1)}
}

// Wait blocks until the rate limit allows another request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
