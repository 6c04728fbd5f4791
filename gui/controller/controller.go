// Package controller provides the bridge between the UI and the resize logic
package controller

import (
	"context"
	"sync"

	"github.com/kacebover/imageshrink/logging"
	"github.com/kacebover/imageshrink/resizer"
)

// Surface is the window that receives resize outcomes.
type Surface interface {
	ShowCompleted(resizer.Result)
	ShowFailed(resizer.Result)
}

// ResizeController owns the resize handler and routes its outcomes to
// whichever main window is currently attached.
type ResizeController struct {
	config  *AppConfig
	logger  *logging.Logger
	opener  resizer.Opener
	mu      sync.RWMutex
	handler *resizer.Handler
	retired []*resizer.Handler
	surface Surface
}

// NewResizeController creates a controller with the persisted config
func NewResizeController(logger *logging.Logger, opener resizer.Opener) *ResizeController {
	return NewResizeControllerWithConfig(LoadConfig(), logger, opener)
}

// NewResizeControllerWithConfig creates a controller with an explicit config
func NewResizeControllerWithConfig(config *AppConfig, logger *logging.Logger, opener resizer.Opener) *ResizeController {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	config.ValidateConfig()

	rc := &ResizeController{
		config: config,
		logger: logger,
		opener: opener,
	}
	rc.handler = rc.newHandler()
	return rc
}

func (rc *ResizeController) newHandler() *resizer.Handler {
	filter, _ := resizer.ParseFilter(rc.config.Filter)

	var opener resizer.Opener
	if rc.config.OpenFolderAfterResize {
		opener = rc.opener
	}

	return resizer.NewHandler(
		resizer.WithNotifier(rc),
		resizer.WithOpener(opener),
		resizer.WithLogger(rc.logger),
		resizer.WithFilter(filter),
		resizer.WithJPEGQuality(rc.config.JPEGQuality),
		resizer.WithDestination(rc.config.DestinationDir),
		resizer.WithMaxDimension(rc.config.MaxDimension),
	)
}

// AttachSurface makes s the receiver of resize outcomes
func (rc *ResizeController) AttachSurface(s Surface) {
	rc.mu.Lock()
	rc.surface = s
	rc.mu.Unlock()
}

// DetachSurface clears the receiver if it is still s
func (rc *ResizeController) DetachSurface(s Surface) {
	rc.mu.Lock()
	if rc.surface == s {
		rc.surface = nil
	}
	rc.mu.Unlock()
}

// HasSurface returns whether a main window is attached
func (rc *ResizeController) HasSurface() bool {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.surface != nil
}

func (rc *ResizeController) currentSurface() Surface {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.surface
}

// ResizeCompleted forwards a success to the attached window
func (rc *ResizeController) ResizeCompleted(res resizer.Result) {
	s := rc.currentSurface()
	if s == nil {
		rc.logger.Warn().Str("output", res.OutputPath).Msg("Resize finished with no window attached")
		return
	}
	s.ShowCompleted(res)
}

// ResizeFailed forwards a failure to the attached window
func (rc *ResizeController) ResizeFailed(res resizer.Result) {
	s := rc.currentSurface()
	if s == nil {
		rc.logger.Warn().Err(res.Err).Msg("Resize failed with no window attached")
		return
	}
	s.ShowFailed(res)
}

// RequestResize validates the form input and starts the resize in the
// background. Input errors are returned at once; everything after that
// arrives through the attached Surface.
func (rc *ResizeController) RequestResize(sourcePath, width, height string) error {
	h := rc.currentHandler()
	req, err := h.Prepare(sourcePath, width, height)
	if err != nil {
		return err
	}

	rc.mu.Lock()
	rc.config.AddRecentFile(sourcePath)
	snapshot := rc.config.Clone()
	rc.mu.Unlock()

	if err := SaveConfig(snapshot); err != nil {
		rc.logger.Warn().Err(err).Msg("Could not save config")
	}

	h.Submit(context.Background(), req)
	return nil
}

func (rc *ResizeController) currentHandler() *resizer.Handler {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.handler
}

// Wait blocks until all requested resizes have finished
func (rc *ResizeController) Wait() {
	rc.mu.RLock()
	handlers := append([]*resizer.Handler{rc.handler}, rc.retired...)
	rc.mu.RUnlock()

	for _, h := range handlers {
		h.Wait()
	}

	rc.mu.Lock()
	rc.pruneRetiredLocked()
	rc.mu.Unlock()
}

func (rc *ResizeController) retiredCount() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.retired)
}

// Destination returns the folder resized images are written to
func (rc *ResizeController) Destination() string {
	return rc.currentHandler().Destination()
}

// GetConfig returns a copy of the current configuration
func (rc *ResizeController) GetConfig() *AppConfig {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return rc.config.Clone()
}

// UpdateConfig replaces and saves the configuration. Requests already
// running keep the settings they started with.
func (rc *ResizeController) UpdateConfig(config *AppConfig) error {
	config = config.Clone()
	config.ValidateConfig()

	rc.mu.Lock()
	rc.config = config
	rc.retired = append(rc.retired, rc.handler)
	rc.handler = rc.newHandler()
	rc.pruneRetiredLocked()
	rc.mu.Unlock()

	return SaveConfig(config)
}

// pruneRetiredLocked drops replaced handlers with nothing left to run.
// rc.mu must be held.
func (rc *ResizeController) pruneRetiredLocked() {
	busy := rc.retired[:0]
	for _, h := range rc.retired {
		if !h.Idle() {
			busy = append(busy, h)
		}
	}
	for i := len(busy); i < len(rc.retired); i++ {
		rc.retired[i] = nil
	}
	rc.retired = busy
}

// RecentFiles returns the recently resized images, newest first
func (rc *ResizeController) RecentFiles() []string {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return append([]string(nil), rc.config.RecentFiles...)
}
