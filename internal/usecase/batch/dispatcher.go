package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/model"
	"github.com/fhuszti/imgbatch/internal/port"
	"github.com/fhuszti/imgbatch/internal/run_context"
)

// Options holds the dispatcher settings that do not come from collaborators.
type Options struct {
	SourceDir string
	Resume    bool
}

type taskDispatcherSrv struct {
	opts    Options
	prov    port.ImageProvider
	prep    port.ImagePreparer
	fetcher port.ImageFetcher
	sink    port.OutputSink
	ledger  port.Ledger
	gate    port.RateGate
}

func NewTaskDispatcher(
	opts Options,
	prov port.ImageProvider,
	prep port.ImagePreparer,
	fetcher port.ImageFetcher,
	sink port.OutputSink,
	ledger port.Ledger,
	gate port.RateGate,
) port.TaskDispatcher {
	return &taskDispatcherSrv{opts, prov, prep, fetcher, sink, ledger, gate}
}

// ProcessTask runs a single record to completion. It never retries; the
// returned error wraps one of the package sentinels.
func (s *taskDispatcherSrv) ProcessTask(ctx context.Context, rec model.TaskRecord) (port.TaskResult, error) {
	ctx = run_context.WithTaskIndex(ctx, rec.Index)
	res := port.TaskResult{Index: rec.Index}

	if err := checkRecord(rec); err != nil {
		return res, err
	}

	key := rec.OutputKey()
	res.OutputKey = key

	if s.opts.Resume {
		done, err := s.isDone(ctx, rec.Index, key)
		if err != nil {
			logger.Warnf(ctx, "⚠️ could not check completion of task %s: %v", rec.Index, err)
		}
		if done {
			return res, fmt.Errorf("%w: %s", ErrAlreadyDone, key)
		}
	}

	owner, err := s.ledger.Claim(ctx, claimScope(ctx, key), rec.Claimant())
	if err != nil {
		return res, fmt.Errorf("claiming %s: %w", key, err)
	}
	if owner != rec.Claimant() {
		return res, fmt.Errorf("%w: %s is owned by %s, not %s", ErrOutputCollision, key, owner, rec.Claimant())
	}

	in := port.GenerateInput{Kind: rec.Type, Prompt: rec.Prompt}
	if rec.Type.NeedsSource() {
		src, err := s.prepareSource(ctx, rec.OriImage)
		if err != nil {
			return res, err
		}
		if src.Resized {
			defer func(path string) {
				if err := os.Remove(path); err != nil {
					logger.Warnf(ctx, "⚠️ failed to remove temp file %q: %v", path, err)
				}
			}(src.Path)
		}
		in.Source = &src
	}

	if err := s.gate.Wait(ctx); err != nil {
		return res, err
	}

	logger.Infof(ctx, "🚀 calling %s for task %s (%s)", s.prov.Name(), rec.Index, rec.Type)
	out, err := s.prov.Generate(ctx, in)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(out.URLs) == 0 {
		return res, fmt.Errorf("%w: response contained no image url", ErrProvider)
	}
	res.SourceURL = out.URLs[0]

	img, err := s.fetcher.Fetch(ctx, res.SourceURL)
	if err != nil {
		return res, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer func() { _ = img.Body.Close() }()

	contentType := img.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(key))
	}
	loc, err := s.sink.Save(ctx, key, img.Body, img.SizeBytes, contentType)
	if err != nil {
		return res, fmt.Errorf("%w: %s: %v", ErrFilesystem, key, err)
	}
	res.Location = loc

	if err := s.ledger.MarkDone(ctx, rec.Index, key); err != nil {
		logger.Warnf(ctx, "⚠️ failed to mark task %s done: %v", rec.Index, err)
	}
	return res, nil
}

// claimScope ties an output claim to the run in ctx. Claims only guard
// against two rows of one batch writing the same key; reruns go through Resume.
func claimScope(ctx context.Context, key string) string {
	if id, ok := run_context.RunIDFromContext(ctx); ok {
		return id.String() + "/" + key
	}
	return key
}

func (s *taskDispatcherSrv) isDone(ctx context.Context, index, key string) (bool, error) {
	done, err := s.ledger.IsDone(ctx, index)
	if err == nil && done {
		return true, nil
	}
	exists, sErr := s.sink.Exists(ctx, key)
	if sErr != nil {
		return false, errors.Join(err, sErr)
	}
	return exists, err
}

func (s *taskDispatcherSrv) prepareSource(ctx context.Context, name string) (port.SourceImage, error) {
	path := filepath.Join(s.opts.SourceDir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return port.SourceImage{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return port.SourceImage{}, fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	if info.IsDir() {
		return port.SourceImage{}, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}

	src, err := s.prep.Prepare(path)
	if errors.Is(err, fs.ErrNotExist) {
		return port.SourceImage{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	if err != nil {
		return port.SourceImage{}, fmt.Errorf("%w: %v", ErrImageProcessing, err)
	}
	if src.Resized {
		logger.Infof(ctx, "resized %s to %dx%d", name, src.Width, src.Height)
	}
	return src, nil
}

// RunBatch processes recs in order, one at a time. Failures never stop the
// batch; cancelling ctx stops it before the next record.
func (s *taskDispatcherSrv) RunBatch(ctx context.Context, recs []model.TaskRecord) port.BatchSummary {
	sum := port.BatchSummary{Total: len(recs)}

	for i, rec := range recs {
		if ctx.Err() != nil {
			logger.Warnf(ctx, "⚠️ run interrupted, %d task(s) not processed", len(recs)-i)
			break
		}

		res, err := s.ProcessTask(ctx, rec)
		tctx := run_context.WithTaskIndex(ctx, rec.Index)
		switch {
		case err == nil:
			sum.Succeeded++
			logger.Infof(tctx, "✅ task %s saved to %s", rec.Index, res.Location)
		case IsSkip(err):
			sum.Skipped++
			logger.Warnf(tctx, "⏭️ skipping row %d: %v", rec.Row, err)
		default:
			sum.Failed++
			logger.Error(tctx, fmt.Sprintf("❌ task %s failed: %v", rec.Index, err), "kind", Classify(err))
		}
	}

	logger.Infof(ctx, "batch finished: %d total, %d succeeded, %d skipped, %d failed",
		sum.Total, sum.Succeeded, sum.Skipped, sum.Failed)
	return sum
}
