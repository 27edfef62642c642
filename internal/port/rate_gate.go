package port

import "context"

// RateGate blocks until the next provider call is allowed.
type RateGate interface {
	Wait(ctx context.Context) error
}
