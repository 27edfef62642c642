package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fhuszti/imgbatch/internal/port"
	"golang.org/x/image/draw"
)

type Resizer struct {
	enabled bool
	minSize int
	maxSize int
	tempDir string
}

// compile-time check: *Resizer must satisfy port.ImagePreparer
var _ port.ImagePreparer = (*Resizer)(nil)

// NewResizer returns a preparer that scales sources into [minSize, maxSize].
// With enabled=false every source passes through untouched.
func NewResizer(enabled bool, minSize, maxSize int, tempDir string) *Resizer {
	return &Resizer{
		enabled: enabled,
		minSize: minSize,
		maxSize: maxSize,
		tempDir: tempDir,
	}
}

// Prepare inspects the image at path. When it is out of bounds the image is
// resampled with Catmull-Rom into TEMP_DIR/{name}_resized{ext}, using the same
// encoding as the source. The returned SourceImage carries the data URI of
// whichever file is to be sent; Resized tells the caller to remove Path later.
func (r *Resizer) Prepare(path string) (port.SourceImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return port.SourceImage{}, err
	}
	cfg, name, err := image.DecodeConfig(f)
	_ = f.Close()
	if err != nil {
		return port.SourceImage{}, fmt.Errorf("failed to read image header %q: %w", path, err)
	}
	format, err := ParseFormat(name)
	if err != nil {
		return port.SourceImage{}, err
	}

	src := port.SourceImage{
		Path:     path,
		MimeType: format.MimeType(),
		Width:    cfg.Width,
		Height:   cfg.Height,
	}

	if r.enabled {
		nw, nh := ScaleToBounds(cfg.Width, cfg.Height, r.minSize, r.maxSize)
		if nw != cfg.Width || nh != cfg.Height {
			out, err := r.resize(path, nw, nh)
			if err != nil {
				return port.SourceImage{}, err
			}
			src.Path, src.Width, src.Height, src.Resized = out, nw, nh, true
		}
	}

	uri, err := DataURI(src.Path, src.MimeType)
	if err != nil {
		if src.Resized {
			_ = os.Remove(src.Path)
		}
		return port.SourceImage{}, fmt.Errorf("failed to encode %q: %w", src.Path, err)
	}
	src.DataURI = uri
	return src, nil
}

func (r *Resizer) resize(path string, width, height int) (string, error) {
	img, format, err := decodeFile(path)
	if err != nil {
		return "", err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	ext := filepath.Ext(path)
	if ext == "" {
		ext = format.Ext()
	}
	out := filepath.Join(r.tempDir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"_resized"+ext)
	if err := writeFile(out, dst, format); err != nil {
		_ = os.Remove(out)
		return "", fmt.Errorf("failed to write resized image: %w", err)
	}
	return out, nil
}
