package task

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/uuid"
	"github.com/hibiken/asynq"
)

func TestGenerateImagePayloadRoundTrip(t *testing.T) {
	runID := uuid.NewUUID()
	rec := model.TaskRecord{Row: 2, Index: "7", Type: model.TaskTypeTIE, Prompt: "watercolor", OriImage: "cat.jpg"}

	tk, err := NewGenerateImageTask(runID, rec)
	if err != nil {
		t.Fatalf("NewGenerateImageTask: %v", err)
	}
	if tk.Type() != TypeGenerateImage {
		t.Errorf("type = %q", tk.Type())
	}

	p, err := ParseGenerateImagePayload(tk)
	if err != nil {
		t.Fatalf("ParseGenerateImagePayload: %v", err)
	}
	if p.RunID != runID || p.Record != rec {
		t.Errorf("payload = %+v", p)
	}
}

func TestParseGenerateImagePayload_Invalid(t *testing.T) {
	if _, err := ParseGenerateImagePayload(asynq.NewTask(TypeGenerateImage, []byte("{"))); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

type fakeClient struct {
	task      *asynq.Task
	opts      []asynq.Option
	err       error
	closeCall bool
}

func (f *fakeClient) EnqueueContext(_ context.Context, t *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task, f.opts = t, opts
	return &asynq.TaskInfo{}, f.err
}

func (f *fakeClient) Close() error {
	f.closeCall = true
	return nil
}

func TestQueue_EnqueueGenerate(t *testing.T) {
	fc := &fakeClient{}
	q := &Queue{client: fc, queue: "imgbatch"}

	rec := model.TaskRecord{Row: 1, Index: "5", Type: model.TaskTypeT2I, Prompt: "fox"}
	if err := q.EnqueueGenerate(context.Background(), uuid.NewUUID(), rec); err != nil {
		t.Fatalf("EnqueueGenerate: %v", err)
	}
	if fc.task == nil || fc.task.Type() != TypeGenerateImage {
		t.Fatalf("enqueued task = %v", fc.task)
	}
	if len(fc.opts) != 1 || fc.opts[0].Type() != asynq.QueueOpt || fc.opts[0].Value() != "imgbatch" {
		t.Errorf("options = %v; want queue imgbatch", fc.opts)
	}

	if err := q.Close(); err != nil || !fc.closeCall {
		t.Errorf("Close: %v, called=%v", err, fc.closeCall)
	}
}

func TestQueue_EnqueueError(t *testing.T) {
	fc := &fakeClient{err: errors.New("redis down")}
	q := &Queue{client: fc}

	if err := q.EnqueueGenerate(context.Background(), uuid.NewUUID(), model.TaskRecord{Index: "1"}); err == nil {
		t.Fatal("expected enqueue error")
	}
	if len(fc.opts) != 0 {
		t.Errorf("no queue option expected without a queue name, got %v", fc.opts)
	}
}
