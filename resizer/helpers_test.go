package resizer

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"sync"
	"testing"
)

// recordingNotifier captures every outcome it receives.
type recordingNotifier struct {
	mu        sync.Mutex
	completed []Result
	failed    []Result
}

func (n *recordingNotifier) ResizeCompleted(r Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.completed = append(n.completed, r)
}

func (n *recordingNotifier) ResizeFailed(r Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failed = append(n.failed, r)
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.completed), len(n.failed)
}

// recordingOpener captures opened folders and can be told to fail.
type recordingOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *recordingOpener) Open(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return o.err
}

func (o *recordingOpener) calls() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.opened))
	copy(out, o.opened)
	return out
}

var errOpenFailed = errors.New("no file browser")

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, testImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func writeJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, testImage(w, h), &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
}

// writeOrientedJPEG writes a w x h JPEG whose EXIF block carries the given
// orientation tag, as phone cameras do for rotated shots.
func writeOrientedJPEG(t *testing.T, path string, w, h int, orientation uint16) {
	t.Helper()
	var encoded bytes.Buffer
	if err := jpeg.Encode(&encoded, testImage(w, h), &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}

	// Big-endian TIFF header, one IFD entry: 0x0112 SHORT x1 = orientation.
	var tiff bytes.Buffer
	tiff.WriteString("MM")
	binary.Write(&tiff, binary.BigEndian, uint16(0x002a))
	binary.Write(&tiff, binary.BigEndian, uint32(8))
	binary.Write(&tiff, binary.BigEndian, uint16(1))
	binary.Write(&tiff, binary.BigEndian, uint16(0x0112))
	binary.Write(&tiff, binary.BigEndian, uint16(3))
	binary.Write(&tiff, binary.BigEndian, uint32(1))
	binary.Write(&tiff, binary.BigEndian, orientation)
	binary.Write(&tiff, binary.BigEndian, uint16(0))
	binary.Write(&tiff, binary.BigEndian, uint32(0))

	payload := append([]byte("Exif\x00\x00"), tiff.Bytes()...)

	var out bytes.Buffer
	out.Write(encoded.Bytes()[:2]) // SOI
	out.Write([]byte{0xff, 0xe1})
	binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write(encoded.Bytes()[2:])

	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// decodedSize returns the dimensions and format name of an image file.
func decodedSize(t *testing.T, path string) (int, int, string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return cfg.Width, cfg.Height, format
}
