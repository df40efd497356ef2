package export

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Export errors.
var (
	// ErrUnsupportedFormat indicates a file extension no encoder handles.
	ErrUnsupportedFormat = errors.New("export: unsupported file format")

	// ErrNoFrames indicates an animation export with nothing to write.
	ErrNoFrames = errors.New("export: animation has no frames")
)

// Format is an output encoding chosen by file extension.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	SVG  Format = "svg"
)

var extFormats = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".svg":  SVG,
}

// Extensions lists every extension FormatOf accepts.
func Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".svg"}
}

// FormatOf resolves the format for path. A path without an extension gets
// def's extension appended; the possibly rewritten path is returned.
func FormatOf(path string, def Format) (Format, string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return def, path + "." + string(def), nil
	}
	f, ok := extFormats[ext]
	if !ok {
		return "", path, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, path, nil
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case GIF:
		return gif.Encode(w, img, &gif.Options{NumColors: 256})
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// WriteImage encodes img to path, choosing the format from its extension
// and defaulting to PNG. It returns the path actually written.
func WriteImage(path string, img image.Image) (string, error) {
	f, path, err := FormatOf(path, PNG)
	if err != nil {
		return path, err
	}
	if f == SVG {
		return path, fmt.Errorf("%w: svg needs a scene, not pixels", ErrUnsupportedFormat)
	}
	return path, writeFile(path, func(w io.Writer) error {
		return Encode(w, img, f)
	})
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("export: close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	if err := fn(out); err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return nil
}
