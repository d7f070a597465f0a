// internal/service/pacer.go
package service

import (
    "context"
    "time"

    "golang.org/x/time/rate"
)

// Pacer spaces out delivery batches so the provider's rate limits are
// respected. Decoupled from the dispatch loop so limits can be tuned
// without touching dispatch logic.
type Pacer interface {
    Wait(ctx context.Context) error
}

// TokenBucketPacer paces batches with a token bucket of burst 1: the first
// wait is immediate, subsequent waits are spaced by the interval.
type TokenBucketPacer struct {
    limiter *rate.Limiter
}

func NewTokenBucketPacer(interval time.Duration) *TokenBucketPacer {
    if interval <= 0 {
        return &TokenBucketPacer{limiter: rate.NewLimiter(rate.Inf, 1)}
    }
    return &TokenBucketPacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (p *TokenBucketPacer) Wait(ctx context.Context) error {
    return p.limiter.Wait(ctx)
}
