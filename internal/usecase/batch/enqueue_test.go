package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/imgbatch/internal/mock"
	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/uuid"
)

func TestEnqueueBatch(t *testing.T) {
	q := &mock.TaskQueue{}
	runID := uuid.NewUUID()
	recs := []model.TaskRecord{
		{Row: 1, Index: "5", Type: model.TaskTypeT2I, Prompt: "fox"},
		{Row: 2, Index: "6", Type: model.TaskTypeOther, Prompt: "x"},
		{Row: 3, Index: "7", Type: model.TaskTypeTIE, Prompt: "watercolor"},
		{Row: 4, Index: "8", Type: model.TaskTypeVTTIE, Prompt: "edit", OriImage: "dog.png"},
	}

	sum := NewTaskEnqueuer(q, runID).EnqueueBatch(context.Background(), recs)
	want := port.BatchSummary{Total: 4, Succeeded: 2, Skipped: 2}
	if sum != want {
		t.Errorf("summary = %+v; want %+v", sum, want)
	}
	if len(q.Records) != 2 || q.Records[0].Index != "5" || q.Records[1].Index != "8" {
		t.Errorf("enqueued %+v", q.Records)
	}
	for _, id := range q.RunIDs {
		if id != runID {
			t.Errorf("run id = %s; want %s", id, runID)
		}
	}
}

func TestEnqueueBatch_QueueError(t *testing.T) {
	q := &mock.TaskQueue{EnqueueErr: errors.New("redis down")}
	recs := []model.TaskRecord{{Row: 1, Index: "5", Type: model.TaskTypeT2I, Prompt: "fox"}}

	sum := NewTaskEnqueuer(q, uuid.NewUUID()).EnqueueBatch(context.Background(), recs)
	if sum.Failed != 1 || sum.Succeeded != 0 {
		t.Errorf("summary = %+v", sum)
	}
}
