package mock

import (
	"context"
	"io"
	"strings"

	"github.com/fhuszti/imgbatch/internal/port"
)

// Fetcher implements port.ImageFetcher for tests, serving Body for any URL.
type Fetcher struct {
	Body        string
	ContentType string

	URLs []string

	FetchErr error

	FetchCalled bool
}

func (m *Fetcher) Fetch(ctx context.Context, url string) (port.FetchedImage, error) {
	m.FetchCalled = true
	m.URLs = append(m.URLs, url)
	if m.FetchErr != nil {
		return port.FetchedImage{}, m.FetchErr
	}
	return port.FetchedImage{
		Body:        io.NopCloser(strings.NewReader(m.Body)),
		SizeBytes:   int64(len(m.Body)),
		ContentType: m.ContentType,
	}, nil
}
