package ledger

import (
	"context"
	"sync"

	"github.com/fhuszti/imgbatch/internal/port"
)

// MemoryLedger lives for a single process.
type MemoryLedger struct {
	mu     sync.Mutex
	claims map[string]string
	done   map[string]string
}

// compile-time check: *MemoryLedger must satisfy port.Ledger
var _ port.Ledger = (*MemoryLedger)(nil)

func NewMemory() *MemoryLedger {
	return &MemoryLedger{
		claims: make(map[string]string),
		done:   make(map[string]string),
	}
}

func (l *MemoryLedger) Claim(_ context.Context, key, claimant string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if owner, ok := l.claims[key]; ok {
		return owner, nil
	}
	l.claims[key] = claimant
	return claimant, nil
}

func (l *MemoryLedger) MarkDone(_ context.Context, index, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.done[index] = key
	return nil
}

func (l *MemoryLedger) IsDone(_ context.Context, index string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.done[index]
	return ok, nil
}
