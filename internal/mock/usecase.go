package mock

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/port"
)

// TaskDispatcher implements port.TaskDispatcher for handler tests.
type TaskDispatcher struct {
	Result port.TaskResult
	Recs   []model.TaskRecord

	ProcessErr error

	ProcessCalled  bool
	RunBatchCalled bool
}

func (m *TaskDispatcher) ProcessTask(ctx context.Context, rec model.TaskRecord) (port.TaskResult, error) {
	m.ProcessCalled = true
	m.Recs = append(m.Recs, rec)
	return m.Result, m.ProcessErr
}

func (m *TaskDispatcher) RunBatch(ctx context.Context, recs []model.TaskRecord) port.BatchSummary {
	m.RunBatchCalled = true
	m.Recs = append(m.Recs, recs...)
	return port.BatchSummary{Total: len(recs), Succeeded: len(recs)}
}
