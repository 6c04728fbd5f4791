//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Sample images for trying the CLI and the GUI by hand:
//
//	go run testdata/generate_test_files.go testdata/samples
//	go run . resize testdata/samples/landscape.jpg -W 320 -H 180 -d /tmp/out
func main() {
	baseDir := filepath.Join(filepath.Dir(os.Args[0]), "samples")
	if len(os.Args) > 1 {
		baseDir = os.Args[1]
	}

	if err := os.MkdirAll(baseDir, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("Creating sample images...")

	samples := []struct {
		name string
		w, h int
	}{
		{"landscape.jpg", 1920, 1080},
		{"portrait.png", 600, 900},
		{"square.gif", 256, 256},
		{"banner.bmp", 1200, 200},
		{"scan.tiff", 800, 1100},
		{"tiny.png", 4, 4},
	}

	for _, s := range samples {
		path := filepath.Join(baseDir, s.name)
		if err := imaging.Save(gradient(s.w, s.h), path, imaging.JPEGQuality(85)); err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", s.name, err)
			continue
		}
		fmt.Printf("  %s (%dx%d)\n", s.name, s.w, s.h)
	}

	// Decoding must fail for this one
	corrupt := filepath.Join(baseDir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("\x89PNG\r\n\x1a\nnot really a png"), 0644); err == nil {
		fmt.Println("  corrupt.png")
	}

	fmt.Println("Done.")
}

// gradient draws a diagonal color ramp with a grid so scaling artifacts are visible
func gradient(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{
				R: uint8(255 * x / max(w-1, 1)),
				G: uint8(255 * y / max(h-1, 1)),
				B: 160,
				A: 255,
			}
			if x%64 == 0 || y%64 == 0 {
				c = color.NRGBA{255, 255, 255, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
