package batch

import (
	"context"
	"errors"
)

var (
	ErrUnsupportedTaskType = errors.New("unsupported task type")
	ErrInvalidTask         = errors.New("invalid task")
	ErrAlreadyDone         = errors.New("task already done")
	ErrOutputCollision     = errors.New("output key already claimed by another row")
	ErrSourceNotFound      = errors.New("source image not found")
	ErrImageProcessing     = errors.New("image processing failed")
	ErrProvider            = errors.New("provider call failed")
	ErrNetwork             = errors.New("image download failed")
	ErrFilesystem          = errors.New("saving output failed")
)

// Error kinds reported by Classify.
const (
	KindSkip       = "skip"
	KindSource     = "source"
	KindImage      = "image"
	KindProvider   = "provider"
	KindNetwork    = "network"
	KindFilesystem = "filesystem"
	KindCancel     = "cancel"
	KindInternal   = "internal"
)

// Classify maps a task error to a coarse kind for logs and summaries.
func Classify(err error) string {
	switch {
	case err == nil:
		return ""
	case IsSkip(err):
		return KindSkip
	case errors.Is(err, ErrSourceNotFound):
		return KindSource
	case errors.Is(err, ErrImageProcessing):
		return KindImage
	case errors.Is(err, ErrProvider):
		return KindProvider
	case errors.Is(err, ErrNetwork):
		return KindNetwork
	case errors.Is(err, ErrFilesystem):
		return KindFilesystem
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancel
	default:
		return KindInternal
	}
}

// IsSkip reports whether err means the task was deliberately not run.
func IsSkip(err error) bool {
	return errors.Is(err, ErrUnsupportedTaskType) ||
		errors.Is(err, ErrInvalidTask) ||
		errors.Is(err, ErrAlreadyDone) ||
		errors.Is(err, ErrOutputCollision)
}
