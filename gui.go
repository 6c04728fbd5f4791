// Package main provides GUI launcher
package main

import (
	"fmt"
	"io"
)

// LaunchGUI explains how to start the desktop build. The Fyne program
// lives in cmd/gui so the CLI does not link against OpenGL.
func LaunchGUI(w io.Writer) {
	fmt.Fprintln(w, "To launch the GUI version, build the GUI from cmd/gui:")
	fmt.Fprintln(w, "  go build -o imageshrink-gui ./cmd/gui")
	fmt.Fprintln(w, "Then run: ./imageshrink-gui")
	fmt.Fprintln(w, "Set IMAGESHRINK_ENV=development to open the developer log panel.")
}
