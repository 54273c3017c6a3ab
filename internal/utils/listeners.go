package utils

import (
	"sync"

	"github.com/google/uuid"
)

// Listeners is a registry of callbacks. Add returns the function that
// removes the callback again; calling it twice is fine.
type Listeners[T any] struct {
	mu sync.RWMutex
	fn map[string]func(T)
}

func (l *Listeners[T]) Add(fn func(T)) (remove func()) {
	id := uuid.NewString()

	l.mu.Lock()
	if l.fn == nil {
		l.fn = make(map[string]func(T))
	}
	l.fn[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.fn, id)
		l.mu.Unlock()
	}
}

// Emit calls every registered callback outside the lock, so a callback may
// remove itself.
func (l *Listeners[T]) Emit(v T) {
	l.mu.RLock()
	fns := make([]func(T), 0, len(l.fn))
	for _, fn := range l.fn {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}

func (l *Listeners[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.fn)
}
