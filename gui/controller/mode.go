package controller

import (
	"os"
	"strings"
)

// Application identity
const (
	AppName    = "ImageShrink"
	AppID      = "com.imageshrink.app"
	AppVersion = "1.0.0"
)

// Mode describes the platform and build flavour the app runs in.
type Mode struct {
	Platform string // runtime.GOOS value
	Dev      bool
}

// IsMac reports whether the app runs on macOS.
func (m Mode) IsMac() bool {
	return m.Platform == "darwin"
}

// DetectMode decides the build flavour. defaultDev is the packaging
// signal (true for unpackaged builds); IMAGESHRINK_ENV set to
// "production" or "development" overrides it.
func DetectMode(platform string, defaultDev bool) Mode {
	dev := defaultDev
	switch strings.ToLower(strings.TrimSpace(os.Getenv("IMAGESHRINK_ENV"))) {
	case "production", "prod", "release":
		dev = false
	case "development", "dev":
		dev = true
	}
	return Mode{Platform: platform, Dev: dev}
}

// WindowSpec is the initial geometry of a window.
type WindowSpec struct {
	Title     string
	Width     float32
	Height    float32
	Resizable bool
}

// MainWindowSpec returns the main window geometry: wide and resizable
// in development, compact and fixed otherwise.
func MainWindowSpec(m Mode) WindowSpec {
	if m.Dev {
		return WindowSpec{Title: AppName, Width: 1000, Height: 600, Resizable: true}
	}
	return WindowSpec{Title: AppName, Width: 500, Height: 600, Resizable: false}
}

// InfoWindowSpec returns the about window geometry.
func InfoWindowSpec() WindowSpec {
	return WindowSpec{Title: "About " + AppName, Width: 300, Height: 300, Resizable: false}
}

// DevWindowSpec returns the developer panel geometry.
func DevWindowSpec() WindowSpec {
	return WindowSpec{Title: AppName + " Developer Tools", Width: 700, Height: 400, Resizable: true}
}

// QuitWhenAllClosed reports whether closing the last window ends the
// process. macOS apps stay resident.
func QuitWhenAllClosed(platform string) bool {
	return platform != "darwin"
}

// ShouldReopenMain reports whether activating the app should bring the
// main window back.
func ShouldReopenMain(platform string, openWindows int) bool {
	return platform == "darwin" && openWindows == 0
}
