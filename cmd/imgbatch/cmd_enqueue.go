package main

import (
	"errors"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/run_context"
	"github.com/fhuszti/imgbatch/internal/task"
	"github.com/fhuszti/imgbatch/internal/tasklist"
	"github.com/fhuszti/imgbatch/internal/usecase/batch"
	"github.com/fhuszti/imgbatch/internal/uuid"
	"github.com/spf13/cobra"
)

func newEnqueueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue",
		Short: "Push the task list onto the Redis queue for workers",
		Args:  cobra.NoArgs,
		RunE:  enqueueE,
	}
}

func enqueueE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required")
	}

	runID := uuid.NewUUID()
	ctx := run_context.WithRunID(contextOrBackground(cmd), runID)

	recs, err := tasklist.Load(cfg.TaskFile)
	if err != nil {
		return err
	}

	queue := task.NewQueue(cfg.RedisAddr, cfg.RedisPassword, cfg.QueueName)
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warnf(ctx, "queue close error: %v", err)
		}
	}()

	sum := batch.NewTaskEnqueuer(queue, runID).EnqueueBatch(ctx, recs)
	printSummary(cmd, "enqueued", sum.Total, sum.Succeeded, sum.Skipped, sum.Failed)
	return nil
}
