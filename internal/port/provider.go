package port

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/model"
)

// SourceImage is the (possibly resized) local image an edit task starts from.
type SourceImage struct {
	Path     string
	MimeType string
	DataURI  string
	Width    int
	Height   int
	Resized  bool
}

// GenerateInput is everything a provider needs for one task.
type GenerateInput struct {
	Kind   model.TaskType
	Prompt string
	Source *SourceImage
}

// GenerateOutput lists the result URLs in provider order.
type GenerateOutput struct {
	URLs []string
}

// ImageProvider calls an external image synthesis API synchronously.
type ImageProvider interface {
	Name() string
	Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error)
}
