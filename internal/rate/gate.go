package rate

import (
	"context"
	"time"

	"github.com/fhuszti/imgbatch/internal/port"
	"golang.org/x/time/rate"
)

// Gate spaces provider calls at least delay apart. The first call passes at once.
type Gate struct {
	limiter *rate.Limiter
}

// compile-time check: *Gate must satisfy port.RateGate
var _ port.RateGate = (*Gate)(nil)

// NewGate returns a gate allowing one call per delay; delay <= 0 disables it.
func NewGate(delay time.Duration) *Gate {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Gate{limiter: rate.NewLimiter(limit, 1)}
}

func (g *Gate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}
