package port

import (
	"context"
	"io"
)

// OutputSink stores generated images under a key.
type OutputSink interface {
	// Save writes reader under key and returns where it ended up.
	// size may be -1 when unknown.
	Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Exists(ctx context.Context, key string) (bool, error)
}
