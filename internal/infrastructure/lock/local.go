package lock

import (
	"context"
	"sync"
)

// Local serializes mutations per table inside one process.
type Local struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocal() *Local {
	return &Local{locks: make(map[string]chan struct{})}
}

// Lock blocks until the table is free or ctx is done.
func (l *Local) Lock(ctx context.Context, table string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[table]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[table] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}
