package task

import (
	"context"

	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/uuid"
	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type Queue struct {
	client enqueuer
	queue  string
}

// compile-time check
var _ port.TaskQueue = (*Queue)(nil)

func NewQueue(addr, password, queue string) *Queue {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Queue{client: c, queue: queue}
}

func (q *Queue) EnqueueGenerate(ctx context.Context, runID uuid.UUID, rec model.TaskRecord) error {
	t, err := NewGenerateImageTask(runID, rec)
	if err != nil {
		return err
	}
	var opts []asynq.Option
	if q.queue != "" {
		opts = append(opts, asynq.Queue(q.queue))
	}
	if _, err := q.client.EnqueueContext(ctx, t, opts...); err != nil {
		return err
	}
	return nil
}

func (q *Queue) Close() error {
	return q.client.Close()
}
