package resizer

import (
	"os/exec"
	"runtime"
)

// Opener shows a folder in the platform file browser.
type Opener interface {
	Open(path string) error
}

// SystemOpener opens folders with the OS shell.
type SystemOpener struct{}

// Open starts the file browser and does not wait for it.
func (SystemOpener) Open(path string) error {
	return openCommand(runtime.GOOS, path).Start()
}

func openCommand(goos, path string) *exec.Cmd {
	switch goos {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("explorer", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

type nopOpener struct{}

func (nopOpener) Open(string) error { return nil }
