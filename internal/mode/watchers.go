package mode

import (
	"container/list"
	"sync"
)

// watchers is an ordered set of handlers. Removal by handle is O(1).
type watchers[T any] struct {
	mu sync.Mutex
	l  list.List
}

// add appends fn and returns a function that removes exactly this
// registration. The remover is safe to call any number of times.
func (w *watchers[T]) add(fn func(T)) func() {
	w.mu.Lock()
	elem := w.l.PushBack(fn)
	w.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			w.l.Remove(elem)
			w.mu.Unlock()
		})
	}
}

func (w *watchers[T]) len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.l.Len()
}

// notify calls every handler registered when notify starts, in order.
func (w *watchers[T]) notify(v T) {
	w.mu.Lock()
	fns := make([]func(T), 0, w.l.Len())
	for e := w.l.Front(); e != nil; e = e.Next() {
		fns = append(fns, e.Value.(func(T)))
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
