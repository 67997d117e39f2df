package rakuten

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between search calls
const DefaultInterval = time.Second

// Spacer enforces a fixed minimum interval between dispatches. The first call
// passes immediately; concurrent callers are not queued fairly.
type Spacer struct {
	limiter *rate.Limiter
}

// NewSpacer returns a spacer for the given interval. Non-positive intervals disable spacing.
func NewSpacer(interval time.Duration) *Spacer {
	if interval <= 0 {
		return &Spacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Spacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the interval since the last dispatch has elapsed or ctx is done
func (s *Spacer) Wait(ctx context.Context) error {
	return s.limiter.Wait(ctx)
}
