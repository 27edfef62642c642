package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/imgbatch/internal/config"
	workerHandler "github.com/fhuszti/imgbatch/internal/handler/worker"
	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/task"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

func newWorkerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Process queued tasks one at a time",
		Args:  cobra.NoArgs,
		RunE:  workerE,
	}
}

func workerE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.RedisAddr == "" {
		return errors.New("REDIS_ADDR must be set to run the worker")
	}
	ctx := contextOrBackground(cmd)

	svc, cleanup, err := initDispatcher(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return runWorker(ctx, newWorkerMux(svc), cfg)
}

func newWorkerMux(svc port.TaskDispatcher) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(task.TypeGenerateImage, func(ctx context.Context, t *asynq.Task) error {
		p, err := task.ParseGenerateImagePayload(t)
		if err != nil {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return workerHandler.GenerateImageHandler(ctx, p, svc)
	})
	return mux
}

func runWorker(ctx context.Context, mux *asynq.ServeMux, cfg *config.Settings) error {
	var queues map[string]int
	if cfg.QueueName != "" {
		queues = map[string]int{cfg.QueueName: 1}
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}, asynq.Config{
		Concurrency: 1,
		Queues:      queues,
	})

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("worker failed to start: %w", err)
	}
	logger.Infof(ctx, "🚀 Worker started on queue %q", cfg.QueueName)

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
		logger.Info(ctx, "🛑 Shutdown signal received, exiting…")
	case <-ctx.Done():
	}

	srv.Shutdown() // stop accepting new tasks, finish in-flight
	logger.Info(ctx, "✅  Worker gracefully stopped")
	return nil
}
