package resizer

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// Filter names a resampling filter.
type Filter string

const (
	FilterLanczos    Filter = "lanczos"
	FilterCatmullRom Filter = "catmullrom"
	FilterLinear     Filter = "linear"
	FilterBox        Filter = "box"
	FilterNearest    Filter = "nearest"
)

// Filters lists the supported filters, best quality first.
func Filters() []Filter {
	return []Filter{FilterLanczos, FilterCatmullRom, FilterLinear, FilterBox, FilterNearest}
}

// ParseFilter resolves a filter name. An empty name means Lanczos.
func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterLanczos, nil
	}
	for _, f := range Filters() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", name)
}

func (f Filter) resample() imaging.ResampleFilter {
	switch f {
	case FilterCatmullRom:
		return imaging.CatmullRom
	case FilterLinear:
		return imaging.Linear
	case FilterBox:
		return imaging.Box
	case FilterNearest:
		return imaging.NearestNeighbor
	default:
		return imaging.Lanczos
	}
}

// decodeImage decodes an in-memory image, honoring EXIF orientation.
func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// scale resizes img to exactly width x height.
func scale(img image.Image, width, height int, filter Filter) image.Image {
	return imaging.Resize(img, width, height, filter.resample())
}

// outputFormat picks the encoder from the file name, PNG when unknown.
func outputFormat(name string) imaging.Format {
	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return imaging.PNG
	}
	return format
}

func encodeImage(w io.Writer, img image.Image, format imaging.Format, jpegQuality int) error {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return nil
}

// writeImage encodes img into a temp file beside path and renames it into
// place, replacing any existing file. It returns the bytes written.
func writeImage(path string, img image.Image, jpegQuality int) (int64, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".imageshrink-*")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := encodeImage(tmp, img, outputFormat(path), jpegQuality); err != nil {
		tmp.Close()
		return 0, err
	}

	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return info.Size(), nil
}

// ensureDir creates dir when it is missing. Only the last path element is
// created; a missing parent is an error.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%w: %s is not a directory", ErrDestination, dir)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}
	return nil
}

// SupportedExtensions lists the file extensions the decoder understands.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}
}

// ImageSize returns the size an image will have once decoded for
// resizing. JPEGs are fully decoded so EXIF orientations 5-8 report the
// upright, swapped size; other formats only need their header.
func ImageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if format != "jpeg" {
		return cfg.Width, cfg.Height, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), nil
}
