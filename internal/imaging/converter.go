package imaging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhuszti/imgbatch/internal/logger"
	"github.com/fhuszti/imgbatch/internal/port"
)

// sourceExts lists the extensions picked up for each conversion target.
var sourceExts = map[Format][]string{
	FormatPNG:  {".jpg", ".jpeg"},
	FormatJPEG: {".png"},
	FormatWebP: {".jpg", ".jpeg", ".png"},
}

// ConvertDir converts every matching file directly inside srcDir to target,
// writing {name}{target ext} into dstDir (srcDir when empty). Existing
// targets are skipped; per-file failures are logged and counted.
func ConvertDir(ctx context.Context, srcDir, dstDir string, target Format) (port.ConvertReport, error) {
	var report port.ConvertReport

	exts, ok := sourceExts[target]
	if !ok {
		return report, fmt.Errorf("unsupported conversion target %q", target)
	}
	if dstDir == "" {
		dstDir = srcDir
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return report, fmt.Errorf("failed to read source dir %q: %w", srcDir, err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return report, fmt.Errorf("failed to create target dir %q: %w", dstDir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !e.Type().IsRegular() || !hasExt(e.Name(), exts) {
			continue
		}

		in := filepath.Join(srcDir, e.Name())
		out := filepath.Join(dstDir, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))+target.Ext())
		if _, err := os.Stat(out); err == nil {
			logger.Infof(ctx, "⏭️ skipping %s, %s already exists", e.Name(), filepath.Base(out))
			report.Skipped++
			continue
		}

		if err := convertFile(in, out, target); err != nil {
			logger.Errorf(ctx, "❌ failed to convert %s: %v", e.Name(), err)
			report.Failed++
			continue
		}
		logger.Infof(ctx, "✅ converted %s -> %s", e.Name(), filepath.Base(out))
		report.Converted++
	}

	return report, nil
}

func convertFile(in, out string, target Format) error {
	img, _, err := decodeFile(in)
	if err != nil {
		return err
	}
	if err := writeFile(out, img, target); err != nil {
		_ = os.Remove(out)
		return err
	}
	return nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
