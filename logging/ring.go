package logging

import (
	"strings"
	"sync"
)

// DefaultRingSize is the number of lines kept for the developer panel.
const DefaultRingSize = 500

// Ring is a bounded, concurrency-safe line buffer. It implements io.Writer
// so it can sit behind a zerolog writer.
type Ring struct {
	mu       sync.Mutex
	lines    []string
	size     int
	onAppend func(string)
}

// NewRing creates a ring holding at most size lines.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{size: size, lines: make([]string, 0, size)}
}

// Write stores each non-empty line of p.
func (r *Ring) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	if text == "" {
		return len(p), nil
	}

	var added []string
	r.mu.Lock()
	for _, line := range strings.Split(text, "\n") {
		if len(r.lines) == r.size {
			copy(r.lines, r.lines[1:])
			r.lines = r.lines[:r.size-1]
		}
		r.lines = append(r.lines, line)
		added = append(added, line)
	}
	cb := r.onAppend
	r.mu.Unlock()

	if cb != nil {
		for _, line := range added {
			cb(line)
		}
	}
	return len(p), nil
}

// Lines returns a copy of the buffered lines, oldest first.
func (r *Ring) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Len returns the number of buffered lines.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.lines)
}

// SetOnAppend registers a callback for every new line. It is called
// outside the lock, on the writer's goroutine.
func (r *Ring) SetOnAppend(callback func(string)) {
	r.mu.Lock()
	r.onAppend = callback
	r.mu.Unlock()
}

// Clear drops all buffered lines.
func (r *Ring) Clear() {
	r.mu.Lock()
	r.lines = r.lines[:0]
	r.mu.Unlock()
}
