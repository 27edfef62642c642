package imaging

import (
	"image"
	"image/color"
	"os"
	"testing"
)

// helper: write a solid w x h image to path in the given format
func writeSolid(t *testing.T, path string, w, h int, c color.Color, f Format) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	if err := writeFile(path, img, f); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// helper: decode the header of the image at path
func readConfig(t *testing.T, path string) (image.Config, string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode config %s: %v", path, err)
	}
	return cfg, format
}
