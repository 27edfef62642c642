package mock

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/port"
)

// Ledger implements port.Ledger with plain maps.
type Ledger struct {
	Claims map[string]string
	Done   map[string]string

	ClaimErr    error
	MarkDoneErr error
	IsDoneErr   error

	MarkDoneCalled bool
}

func (m *Ledger) Claim(ctx context.Context, key, claimant string) (string, error) {
	if m.ClaimErr != nil {
		return "", m.ClaimErr
	}
	if m.Claims == nil {
		m.Claims = make(map[string]string)
	}
	if owner, ok := m.Claims[key]; ok {
		return owner, nil
	}
	m.Claims[key] = claimant
	return claimant, nil
}

func (m *Ledger) MarkDone(ctx context.Context, index, key string) error {
	m.MarkDoneCalled = true
	if m.MarkDoneErr != nil {
		return m.MarkDoneErr
	}
	if m.Done == nil {
		m.Done = make(map[string]string)
	}
	m.Done[index] = key
	return nil
}

func (m *Ledger) IsDone(ctx context.Context, index string) (bool, error) {
	if m.IsDoneErr != nil {
		return false, m.IsDoneErr
	}
	_, ok := m.Done[index]
	return ok, nil
}

var _ port.Ledger = (*Ledger)(nil)
