package worker

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/run_context"
	"github.com/fhuszti/imgbatch/internal/task"
	"github.com/fhuszti/imgbatch/internal/usecase/batch"
)

// GenerateImageHandler handles a generate-image task.
// Skipped records are acknowledged; real failures are returned so that
// asynq archives them.
func GenerateImageHandler(ctx context.Context, p task.GenerateImagePayload, svc port.TaskDispatcher) error {
	if !p.RunID.IsZero() {
		ctx = run_context.WithRunID(ctx, p.RunID)
	}
	ctx = run_context.WithTaskIndex(ctx, p.Record.Index)

	res, err := svc.ProcessTask(ctx, p.Record)
	if batch.IsSkip(err) {
		logger.Warnf(ctx, "⏭️  Skipping row %d: %v", p.Record.Row, err)
		return nil
	}
	if err != nil {
		logger.Error(ctx, "❌  Failed to generate image for task "+p.Record.Index+": "+err.Error(), "kind", batch.Classify(err))
		return err
	}

	logger.Infof(ctx, "✅  Successfully saved task %s to %s", p.Record.Index, res.Location)
	return nil
}
