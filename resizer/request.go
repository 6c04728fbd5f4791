// Package resizer implements the resize-and-save operation behind the
// desktop app and the CLI: read an image, scale it to an exact size, and
// write the copy into a destination folder under the same file name.
package resizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultMaxDimension caps each side of the output image.
const DefaultMaxDimension = 16384

// Common errors
var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrSourceRead        = errors.New("cannot read source image")
	ErrDecode            = errors.New("cannot decode image")
	ErrEncode            = errors.New("cannot encode image")
	ErrDestination       = errors.New("cannot prepare destination folder")
	ErrWrite             = errors.New("cannot write output image")
)

// Request is a single resize job. It lives for one operation only.
type Request struct {
	SourcePath     string
	Width          int
	Height         int
	DestinationDir string
}

// OutputPath is where the resized copy is written.
func (r Request) OutputPath() string {
	return filepath.Join(r.DestinationDir, filepath.Base(r.SourcePath))
}

// Validate checks the request before any file is touched.
// maxDimension <= 0 means DefaultMaxDimension.
func (r Request) Validate(maxDimension int) error {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if strings.TrimSpace(r.SourcePath) == "" {
		return fmt.Errorf("%w: source path is empty", ErrInvalidRequest)
	}
	if strings.TrimSpace(r.DestinationDir) == "" {
		return fmt.Errorf("%w: destination folder is empty", ErrInvalidRequest)
	}
	if err := checkDimension("width", r.Width, maxDimension); err != nil {
		return err
	}
	return checkDimension("height", r.Height, maxDimension)
}

func checkDimension(name string, v, max int) error {
	if v < 1 || v > max {
		return fmt.Errorf("%w: %s must be between 1 and %d, got %d", ErrInvalidDimensions, name, max, v)
	}
	return nil
}

// ParseDimensions converts the width and height typed into the UI.
func ParseDimensions(width, height string) (int, int, error) {
	w, err := parseDimension("width", width)
	if err != nil {
		return 0, 0, err
	}
	h, err := parseDimension("height", height)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func parseDimension(name, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidDimensions, name)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a whole number", ErrInvalidDimensions, name, s)
	}
	return v, nil
}

// DefaultDestination returns the user's Downloads folder.
func DefaultDestination() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "Downloads"
	}
	return filepath.Join(home, "Downloads")
}
