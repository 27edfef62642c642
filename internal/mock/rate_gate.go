package mock

import "context"

// RateGate counts waits and never blocks.
type RateGate struct {
	WaitErr error
	Waits   int
}

func (m *RateGate) Wait(ctx context.Context) error {
	m.Waits++
	return m.WaitErr
}
