package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/run_context"
	"github.com/fhuszti/imgbatch/internal/tasklist"
	"github.com/fhuszti/imgbatch/internal/uuid"
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process the task list in this process",
		Long: `Process every task of the task list sequentially.

Unsupported or invalid rows are skipped and failed tasks are reported; neither
stops the batch. Interrupting the run stops it before the next task.`,
		Args: cobra.NoArgs,
		RunE: runE,
	}
}

func runE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = run_context.WithRunID(ctx, uuid.NewUUID())

	recs, err := tasklist.Load(cfg.TaskFile)
	if err != nil {
		return err
	}
	logger.Infof(ctx, "loaded %d task(s) from %s", len(recs), cfg.TaskFile)

	svc, cleanup, err := initDispatcher(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sum := svc.RunBatch(ctx, recs)
	printSummary(cmd, "processed", sum.Total, sum.Succeeded, sum.Skipped, sum.Failed)
	return nil
}

func printSummary(cmd *cobra.Command, verb string, total, ok, skipped, failed int) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %d task(s): %d succeeded, %d skipped, %d failed\n",
		verb, total, ok, skipped, failed)
}

// contextOrBackground guards against commands executed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
