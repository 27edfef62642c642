package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fhuszti/imgbatch/internal/port"
)

type HTTPFetcher struct {
	client *http.Client
}

// compile-time check: *HTTPFetcher must satisfy port.ImageFetcher
var _ port.ImageFetcher = (*HTTPFetcher)(nil)

// New returns a fetcher whose requests give up after timeout (0 = none).
func New(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch issues a GET and hands back the open body. Only 200 is accepted.
// The caller must close Body.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (port.FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return port.FetchedImage{}, fmt.Errorf("invalid image url %q: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return port.FetchedImage{}, fmt.Errorf("download failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		_ = resp.Body.Close()
		return port.FetchedImage{}, fmt.Errorf("download failed: status %d", resp.StatusCode)
	}
	return port.FetchedImage{
		Body:        resp.Body,
		SizeBytes:   resp.ContentLength,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
