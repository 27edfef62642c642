package batch

import (
	"context"
	"fmt"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/uuid"
)

type taskEnqueuerSrv struct {
	queue port.TaskQueue
	runID uuid.UUID
}

func NewTaskEnqueuer(queue port.TaskQueue, runID uuid.UUID) port.TaskEnqueuer {
	return &taskEnqueuerSrv{queue, runID}
}

// EnqueueBatch pushes every runnable record onto the queue, in file order.
// Records that would be skipped by the worker anyway are dropped here.
func (s *taskEnqueuerSrv) EnqueueBatch(ctx context.Context, recs []model.TaskRecord) port.BatchSummary {
	sum := port.BatchSummary{Total: len(recs)}

	for _, rec := range recs {
		if ctx.Err() != nil {
			break
		}
		if err := checkRecord(rec); err != nil {
			sum.Skipped++
			logger.Warnf(ctx, "⏭️ not enqueuing row %d: %v", rec.Row, err)
			continue
		}
		if err := s.queue.EnqueueGenerate(ctx, s.runID, rec); err != nil {
			sum.Failed++
			logger.Error(ctx, fmt.Sprintf("❌ failed to enqueue task %s: %v", rec.Index, err))
			continue
		}
		sum.Succeeded++
	}

	logger.Infof(ctx, "enqueued %d of %d task(s), %d skipped, %d failed", sum.Succeeded, sum.Total, sum.Skipped, sum.Failed)
	return sum
}
