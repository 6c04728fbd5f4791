package resizer

import "time"

// Result is the outcome of one resize. Err is nil on success.
type Result struct {
	Request    Request
	OutputPath string
	Width      int
	Height     int
	Bytes      int64
	Duration   time.Duration
	Err        error
}

// OK reports whether the resize succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Notifier receives the outcome of every resize. Exactly one of the two
// methods is called per operation.
type Notifier interface {
	ResizeCompleted(Result)
	ResizeFailed(Result)
}

type nopNotifier struct{}

func (nopNotifier) ResizeCompleted(Result) {}
func (nopNotifier) ResizeFailed(Result)    {}
