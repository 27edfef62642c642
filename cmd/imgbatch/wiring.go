package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fhuszti/imgbatch/internal/config"
	"github.com/fhuszti/imgbatch/internal/fetcher"
	"github.com/fhuszti/imgbatch/internal/imaging"
	"github.com/fhuszti/imgbatch/internal/ledger"
	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/provider/ark"
	"github.com/fhuszti/imgbatch/internal/provider/dashscope"
	"github.com/fhuszti/imgbatch/internal/rate"
	"github.com/fhuszti/imgbatch/internal/storage"
	"github.com/fhuszti/imgbatch/internal/usecase/batch"
	"github.com/spf13/cobra"
)

// loadConfig binds the command's flags and loads the settings.
func loadConfig(cmd *cobra.Command) (*config.Settings, error) {
	if err := bindFlags(cmd); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func initProvider(cfg *config.Settings) port.ImageProvider {
	if cfg.Provider == config.ProviderDashScope {
		return dashscope.New(cfg.DashScope)
	}
	return ark.New(cfg.Ark)
}

func initSink(ctx context.Context, cfg *config.Settings) (port.OutputSink, error) {
	if cfg.OutputBackend == config.BackendMinio {
		s, err := storage.NewMinioSink(ctx, cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise MinIO: %w", err)
		}
		return s, nil
	}
	return storage.NewLocalSink(cfg.OutputDir)
}

func initLedger(ctx context.Context, cfg *config.Settings) (port.Ledger, io.Closer) {
	if cfg.RedisAddr == "" {
		return ledger.NewMemory(), nil
	}
	logger.Infof(ctx, "using redis ledger at %s", cfg.RedisAddr)
	l := ledger.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.LedgerTTL)
	return l, l
}

// initDispatcher assembles the task dispatcher. The returned func releases
// what it opened.
func initDispatcher(ctx context.Context, cfg *config.Settings) (port.TaskDispatcher, func(), error) {
	sink, err := initSink(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	led, closer := initLedger(ctx, cfg)
	cleanup := func() {
		if closer == nil {
			return
		}
		if err := closer.Close(); err != nil {
			logger.Warnf(ctx, "ledger close error: %v", err)
		}
	}

	prov := initProvider(cfg)
	logger.Infof(ctx, "🚀 using provider %s", prov.Name())

	svc := batch.NewTaskDispatcher(
		batch.Options{SourceDir: cfg.SourceDir, Resume: cfg.Resume},
		prov,
		imaging.NewResizer(cfg.ResizeEnabled, cfg.ResizeMin, cfg.ResizeMax, cfg.TempDir),
		fetcher.New(cfg.FetchTimeout),
		sink,
		led,
		rate.NewGate(cfg.TaskDelay),
	)
	return svc, cleanup, nil
}
