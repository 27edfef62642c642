package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fhuszti/imgbatch/internal/port"
)

// LocalSink writes generated images into a directory on disk.
type LocalSink struct {
	dir string
}

// compile-time check: *LocalSink must satisfy port.OutputSink
var _ port.OutputSink = (*LocalSink)(nil)

// NewLocalSink creates dir if needed.
func NewLocalSink(dir string) (*LocalSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %q: %w", dir, err)
	}
	return &LocalSink{dir: dir}, nil
}

// Save streams reader into {dir}/{key}, replacing any existing file.
// The data goes to a temp file first, so {dir}/{key} only ever holds a
// complete image.
func (s *LocalSink) Save(ctx context.Context, key string, reader io.Reader, _ int64, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, key)
	f, err := os.CreateTemp(s.dir, "."+key+".*.part")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to move %q into place: %w", path, err)
	}
	return path, nil
}

func (s *LocalSink) Exists(_ context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
