package imaging

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Format is an image encoding understood by this package.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
)

const (
	jpegQuality = 95
	webpQuality = 80
)

// ParseFormat accepts a format name or a file extension, with or without dot.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "webp":
		return FormatWebP, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// MimeType returns the IANA media type of the format.
func (f Format) MimeType() string {
	return "image/" + string(f)
}

// Ext returns the canonical file extension, dot included.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatJPEG:
		return jpeg.Encode(w, flattenOnWhite(img), &jpeg.Options{Quality: jpegQuality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Quality: webpQuality})
	default:
		return fmt.Errorf("unsupported image format %q", f)
	}
}

// flattenOnWhite composites translucent images over a white background.
func flattenOnWhite(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}

// DataURI reads the file at path and returns it as a base64 data URI.
func DataURI(path, mimeType string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// decodeFile opens and fully decodes an image file.
func decodeFile(path string) (image.Image, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer func(f *os.File) { _ = f.Close() }(f)

	img, name, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %q: %w", path, err)
	}
	format, err := ParseFormat(name)
	if err != nil {
		return nil, "", err
	}
	return img, format, nil
}

// writeFile encodes img into path, creating parent directories.
func writeFile(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(out, img, f); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return out.Close()
}
