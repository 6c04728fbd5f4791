package resizer

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kacebover/imageshrink/logging"
)

// Option configures a Handler.
type Option func(*Handler)

// WithNotifier sets where outcomes are reported.
func WithNotifier(n Notifier) Option {
	return func(h *Handler) {
		if n != nil {
			h.notifier = n
		}
	}
}

// WithOpener sets how the destination folder is shown after a success.
// A nil opener disables opening.
func WithOpener(o Opener) Option {
	return func(h *Handler) {
		if o == nil {
			o = nopOpener{}
		}
		h.opener = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithFilter sets the resampling filter.
func WithFilter(f Filter) Option {
	return func(h *Handler) { h.filter = f }
}

// WithJPEGQuality sets the JPEG encoder quality (1-100).
func WithJPEGQuality(q int) Option {
	return func(h *Handler) { h.jpegQuality = q }
}

// WithDestination sets the folder injected into prepared requests.
func WithDestination(dir string) Option {
	return func(h *Handler) {
		if dir != "" {
			h.destination = dir
		}
	}
}

// WithMaxDimension caps the accepted width and height.
func WithMaxDimension(max int) Option {
	return func(h *Handler) { h.maxDimension = max }
}

// Handler performs resize requests. It is safe for concurrent use:
// requests for different output files run in parallel, requests for the
// same output file are serialized.
type Handler struct {
	notifier     Notifier
	opener       Opener
	logger       *logging.Logger
	filter       Filter
	jpegQuality  int
	destination  string
	maxDimension int

	locks    *pathLocks
	inFlight sync.WaitGroup
	pending  atomic.Int64
}

// NewHandler creates a handler. Without options it writes to the
// Downloads folder, opens it with the system file browser and reports
// nowhere.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		notifier:     nopNotifier{},
		opener:       SystemOpener{},
		logger:       logging.Nop(),
		filter:       FilterLanczos,
		jpegQuality:  DefaultJPEGQuality,
		destination:  DefaultDestination(),
		maxDimension: DefaultMaxDimension,
		locks:        newPathLocks(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Destination returns the folder injected into prepared requests.
func (h *Handler) Destination() string {
	return h.destination
}

// Prepare turns the raw UI input into a request bound for the
// handler's destination folder.
func (h *Handler) Prepare(sourcePath, width, height string) (Request, error) {
	w, ht, err := ParseDimensions(width, height)
	if err != nil {
		return Request{}, err
	}
	req := Request{
		SourcePath:     sourcePath,
		Width:          w,
		Height:         ht,
		DestinationDir: h.destination,
	}
	if err := req.Validate(h.maxDimension); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Submit runs the request in the background and returns at once. The
// outcome is only delivered through the Notifier.
func (h *Handler) Submit(ctx context.Context, req Request) {
	h.inFlight.Add(1)
	h.pending.Add(1)
	go func() {
		defer h.inFlight.Done()
		defer h.pending.Add(-1)
		h.Resize(ctx, req)
	}()
}

// Idle reports whether no submitted request is still running.
func (h *Handler) Idle() bool {
	return h.pending.Load() == 0
}

// Wait blocks until every submitted request has finished.
func (h *Handler) Wait() {
	h.inFlight.Wait()
}

// Resize reads, scales and writes one image, then notifies and opens the
// destination folder. Steps run strictly in that order.
func (h *Handler) Resize(ctx context.Context, req Request) Result {
	start := time.Now()
	log := h.logger.Child(h.logger.With().
		Str("source", req.SourcePath).
		Int("width", req.Width).
		Int("height", req.Height))

	res := Result{Request: req}
	fail := func(err error) Result {
		res.Err = err
		res.Duration = time.Since(start)
		log.Error().Err(err).Msg("Resize failed")
		h.notifier.ResizeFailed(res)
		return res
	}

	if err := req.Validate(h.maxDimension); err != nil {
		return fail(err)
	}
	log.Debug().Str("dest", req.DestinationDir).Msg("Resize started")

	data, err := os.ReadFile(req.SourcePath)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrSourceRead, err))
	}

	img, err := decodeImage(data)
	if err != nil {
		return fail(err)
	}
	resized := scale(img, req.Width, req.Height, h.filter)

	if err := ensureDir(req.DestinationDir); err != nil {
		return fail(err)
	}

	out := req.OutputPath()
	release, err := h.locks.acquire(ctx, out)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWrite, err))
	}
	n, err := writeImage(out, resized, h.jpegQuality)
	release()
	if err != nil {
		return fail(err)
	}

	bounds := resized.Bounds()
	res.OutputPath = out
	res.Width = bounds.Dx()
	res.Height = bounds.Dy()
	res.Bytes = n
	res.Duration = time.Since(start)

	log.Info().
		Str("output", out).
		Int64("bytes", n).
		Dur("duration", res.Duration).
		Msg("Image resized")

	h.notifier.ResizeCompleted(res)

	if err := h.opener.Open(req.DestinationDir); err != nil {
		log.Warn().Err(err).Str("dest", req.DestinationDir).Msg("Could not open destination folder")
	}
	return res
}
