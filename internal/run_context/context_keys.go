package run_context

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/uuid"
)

type ctxKey string

const (
	RunIDKey     ctxKey = "runID"
	TaskIndexKey ctxKey = "taskIndex"
)

func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

func RunIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(RunIDKey).(uuid.UUID)
	return id, ok
}

func WithTaskIndex(ctx context.Context, index string) context.Context {
	return context.WithValue(ctx, TaskIndexKey, index)
}

func TaskIndexFromContext(ctx context.Context) (string, bool) {
	idx, ok := ctx.Value(TaskIndexKey).(string)
	return idx, ok && idx != ""
}
