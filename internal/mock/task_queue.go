package mock

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/uuid"
)

// TaskQueue records enqueued records.
type TaskQueue struct {
	RunIDs  []uuid.UUID
	Records []model.TaskRecord

	EnqueueErr error

	CloseCalled bool
}

func (m *TaskQueue) EnqueueGenerate(ctx context.Context, runID uuid.UUID, rec model.TaskRecord) error {
	if m.EnqueueErr != nil {
		return m.EnqueueErr
	}
	m.RunIDs = append(m.RunIDs, runID)
	m.Records = append(m.Records, rec)
	return nil
}

func (m *TaskQueue) Close() error {
	m.CloseCalled = true
	return nil
}
