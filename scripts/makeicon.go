//go:build ignore
// +build ignore

package main

import (
	"image"
	"image/color"
	"os"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		os.Args = append(os.Args, "Icon.png")
	}

	const size = 512

	bgColor := color.NRGBA{17, 24, 39, 255}
	frameColor := color.NRGBA{148, 163, 184, 255}
	accentColor := color.NRGBA{99, 102, 241, 255}

	img := imaging.New(size, size, bgColor)

	// Large frame outline: the original picture
	outline(img, image.Rect(64, 64, 448, 448), 14, frameColor)

	// Small filled frame in the corner: the shrunk copy
	fill(img, image.Rect(96, 288, 224, 416), accentColor)

	// Diagonal arrow pointing from the big frame towards the small one
	for i := 0; i < 150; i++ {
		for j := -12; j < 12; j++ {
			x := 400 - i
			y := 112 + i + j
			if x >= 0 && y >= 0 && x < size && y < size {
				img.Set(x, y, accentColor)
			}
		}
	}
	fill(img, image.Rect(236, 236, 300, 260), accentColor)
	fill(img, image.Rect(236, 196, 260, 260), accentColor)

	if err := imaging.Save(img, os.Args[1]); err != nil {
		panic(err)
	}
}

func fill(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func outline(img *image.NRGBA, r image.Rectangle, thickness int, c color.NRGBA) {
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), c)
}
