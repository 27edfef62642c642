package port

import (
	"context"
	"io"
)

// FetchedImage is an open response body of a generated image.
type FetchedImage struct {
	Body        io.ReadCloser
	SizeBytes   int64
	ContentType string
}

// ImageFetcher downloads generated images.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (FetchedImage, error)
}
