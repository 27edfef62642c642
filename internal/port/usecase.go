package port

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/model"
)

// TaskResult describes a task that produced an output file.
type TaskResult struct {
	Index     string
	OutputKey string
	Location  string
	SourceURL string
}

// BatchSummary counts task outcomes of one run.
type BatchSummary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
}

// TaskDispatcher runs task records against an image provider and stores the results.
type TaskDispatcher interface {
	ProcessTask(ctx context.Context, rec model.TaskRecord) (TaskResult, error)
	RunBatch(ctx context.Context, recs []model.TaskRecord) BatchSummary
}

// TaskEnqueuer pushes a task list onto the queue instead of running it in-process.
type TaskEnqueuer interface {
	EnqueueBatch(ctx context.Context, recs []model.TaskRecord) BatchSummary
}

// ConvertReport counts files handled by a directory conversion.
type ConvertReport struct {
	Converted int
	Skipped   int
	Failed    int
}
