package migrate

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle paces API write traffic. The zero value and a nil Throttle both
// wait for nothing.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle that allows one operation per delay interval.
// A non-positive delay disables pacing.
func NewThrottle(delay time.Duration) *Throttle {
	if delay <= 0 {
		return &Throttle{}
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the next operation is allowed or the context is done.
func (t *Throttle) Wait(ctx context.Context) error {
	if t == nil || t.limiter == nil {
		return nil
	}
	return t.limiter.Wait(ctx)
}
