package resizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"", FilterLanczos, false},
		{"Lanczos", FilterLanczos, false},
		{" box ", FilterBox, false},
		{"nearest", FilterNearest, false},
		{"catmullrom", FilterCatmullRom, false},
		{"bicubic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilters_AllResample(t *testing.T) {
	img := testImage(30, 30)
	for _, f := range Filters() {
		out := scale(img, 7, 11, f)
		if out.Bounds().Dx() != 7 || out.Bounds().Dy() != 11 {
			t.Errorf("%s: got %v, want 7x11", f, out.Bounds())
		}
	}
}

func TestOutputFormat(t *testing.T) {
	tests := map[string]imaging.Format{
		"a.png":  imaging.PNG,
		"a.jpeg": imaging.JPEG,
		"a.JPG":  imaging.JPEG,
		"a.gif":  imaging.GIF,
		"a.bmp":  imaging.BMP,
		"a.tiff": imaging.TIFF,
		"a.webp": imaging.PNG,
		"a":      imaging.PNG,
	}
	for name, want := range tests {
		if got := outputFormat(name); got != want {
			t.Errorf("outputFormat(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	tmp := t.TempDir()

	existing := filepath.Join(tmp, "existing")
	if err := os.Mkdir(existing, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := ensureDir(existing); err != nil {
		t.Errorf("existing dir: %v", err)
	}

	fresh := filepath.Join(tmp, "fresh")
	if err := ensureDir(fresh); err != nil {
		t.Errorf("fresh dir: %v", err)
	}
	if info, err := os.Stat(fresh); err != nil || !info.IsDir() {
		t.Error("fresh dir was not created")
	}

	if err := ensureDir(filepath.Join(tmp, "a", "b")); err == nil {
		t.Error("nested missing dir should fail")
	}
}

func TestWriteImage_ReplacesExisting(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "out.png")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := writeImage(path, testImage(12, 8), DefaultJPEGQuality)
	if err != nil {
		t.Fatalf("writeImage: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != n {
		t.Errorf("reported %d bytes, file has %d", n, info.Size())
	}
	if w, h, _ := decodedSize(t, path); w != 12 || h != 8 {
		t.Errorf("written image is %dx%d, want 12x8", w, h)
	}
}

func TestImageSize(t *testing.T) {
	tmp := t.TempDir()
	pngPath := filepath.Join(tmp, "a.png")
	writePNG(t, pngPath, 33, 21)
	jpg := filepath.Join(tmp, "b.jpg")
	writeJPEG(t, jpg, 64, 48)

	if w, h, err := ImageSize(pngPath); err != nil || w != 33 || h != 21 {
		t.Errorf("ImageSize(png) = %d, %d, %v; want 33, 21, nil", w, h, err)
	}
	if w, h, err := ImageSize(jpg); err != nil || w != 64 || h != 48 {
		t.Errorf("ImageSize(jpg) = %d, %d, %v; want 64, 48, nil", w, h, err)
	}

	bad := filepath.Join(tmp, "c.png")
	if err := os.WriteFile(bad, []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := ImageSize(bad); !errors.Is(err, ErrDecode) {
		t.Errorf("err = %v, want ErrDecode", err)
	}
	if _, _, err := ImageSize(filepath.Join(tmp, "missing.png")); !errors.Is(err, ErrSourceRead) {
		t.Errorf("err = %v, want ErrSourceRead", err)
	}
}

func TestImageSize_ExifOrientation(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		orientation uint16
		wantW       int
		wantH       int
	}{
		{1, 400, 300},
		{3, 400, 300},
		{6, 300, 400},
		{8, 300, 400},
	}

	for _, tt := range tests {
		path := filepath.Join(tmp, fmt.Sprintf("rot%d.jpg", tt.orientation))
		writeOrientedJPEG(t, path, 400, 300, tt.orientation)

		w, h, err := ImageSize(path)
		if err != nil {
			t.Fatalf("ImageSize(orientation %d): %v", tt.orientation, err)
		}
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("ImageSize(orientation %d) = %dx%d, want %dx%d", tt.orientation, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestImageSize_MatchesResizeInput(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "phone.jpg")
	writeOrientedJPEG(t, src, 400, 300, 6)
	dest := filepath.Join(tmp, "out")

	w, h, err := ImageSize(src)
	if err != nil {
		t.Fatalf("ImageSize: %v", err)
	}

	// Resizing to the reported size must keep the upright picture as is.
	h2 := NewHandler(WithOpener(nil), WithDestination(dest))
	res := h2.Resize(context.Background(), Request{SourcePath: src, Width: w, Height: h, DestinationDir: dest})
	if !res.OK() {
		t.Fatalf("Resize: %v", res.Err)
	}
	if res.Width != 300 || res.Height != 400 {
		t.Errorf("result = %dx%d, want 300x400", res.Width, res.Height)
	}
	if ow, oh, _ := decodedSize(t, res.OutputPath); ow != 300 || oh != 400 {
		t.Errorf("output = %dx%d, want 300x400", ow, oh)
	}
}
