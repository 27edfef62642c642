package port

import "context"

// Ledger records which row owns an output key and which tasks are done.
type Ledger interface {
	// Claim assigns key to claimant unless another claimant already owns it.
	// It returns the owner after the call. Callers scope key to a run.
	Claim(ctx context.Context, key, claimant string) (string, error)
	MarkDone(ctx context.Context, index, key string) error
	IsDone(ctx context.Context, index string) (bool, error)
}
