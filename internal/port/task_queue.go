package port

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/uuid"
)

// TaskQueue enqueues task records for asynchronous processing by the worker.
type TaskQueue interface {
	EnqueueGenerate(ctx context.Context, runID uuid.UUID, rec model.TaskRecord) error
	Close() error
}
