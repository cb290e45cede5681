package limiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles expensive endpoints such as image uploads.
// One token is replenished every interval up to the burst size.
type Limiter struct {
	limiter *rate.Limiter
}

func New(interval time.Duration, burst int) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Every(interval), burst),
	}
}

// Allow reports whether an event may happen now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks until an event is permitted or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
