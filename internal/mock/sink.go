package mock

import (
	"context"
	"io"
	"sync"

	"github.com/fhuszti/imgbatch/internal/port"
)

// Sink implements port.OutputSink in memory.
type Sink struct {
	mu sync.Mutex

	// stored values
	Files        map[string][]byte
	ContentTypes map[string]string

	// errors
	SaveErr   error
	ExistsErr error

	// call flags
	SaveCalled   bool
	ExistsCalled bool
}

func (m *Sink) Save(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalled = true
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if m.Files == nil {
		m.Files = make(map[string][]byte)
		m.ContentTypes = make(map[string]string)
	}
	m.Files[key] = data
	m.ContentTypes[key] = contentType
	return "mem://" + key, nil
}

func (m *Sink) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ExistsCalled = true
	if m.ExistsErr != nil {
		return false, m.ExistsErr
	}
	_, ok := m.Files[key]
	return ok, nil
}

var _ port.OutputSink = (*Sink)(nil)
