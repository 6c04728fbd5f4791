package resizer

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// pathLocks serializes writers of the same output file. Entries are
// dropped once nobody holds or waits on them.
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*pathLock
}

type pathLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: make(map[string]*pathLock)}
}

// acquire blocks until path is free or ctx is done.
func (p *pathLocks) acquire(ctx context.Context, path string) (func(), error) {
	p.mu.Lock()
	l, ok := p.locks[path]
	if !ok {
		l = &pathLock{sem: semaphore.NewWeighted(1)}
		p.locks[path] = l
	}
	l.refs++
	p.mu.Unlock()

	if err := l.sem.Acquire(ctx, 1); err != nil {
		p.unref(path, l)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.sem.Release(1)
			p.unref(path, l)
		})
	}, nil
}

func (p *pathLocks) unref(path string, l *pathLock) {
	p.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(p.locks, path)
	}
	p.mu.Unlock()
}

func (p *pathLocks) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.locks)
}
