// Package platform provides sources for the operating environment's
// dark-mode preference.
package platform

import (
	"sort"
	"sync"
)

// Signal reports whether the platform currently prefers a dark appearance
// and delivers change events to subscribers.
type Signal interface {
	// PrefersDark returns the current preference.
	PrefersDark() bool

	// Subscribe registers fn for change events. The returned cancel function
	// is idempotent. An event already being delivered when cancel is called
	// may still reach fn.
	Subscribe(fn func(prefersDark bool)) (cancel func())
}

// listeners is an ordered set of change callbacks keyed by registration id.
type listeners struct {
	mu     sync.Mutex
	nextID uint64
	fns    map[uint64]func(bool)
}

func (l *listeners) add(fn func(bool)) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.fns == nil {
		l.fns = make(map[uint64]func(bool))
	}
	l.nextID++
	l.fns[l.nextID] = fn
	return l.nextID
}

// remove reports whether id was registered and how many listeners remain.
func (l *listeners) remove(id uint64) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.fns[id]
	delete(l.fns, id)
	return ok, len(l.fns)
}

func (l *listeners) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// snapshot returns the callbacks in registration order.
func (l *listeners) snapshot() []func(bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]uint64, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]func(bool), 0, len(ids))
	for _, id := range ids {
		out = append(out, l.fns[id])
	}
	return out
}

func (l *listeners) emit(dark bool) {
	for _, fn := range l.snapshot() {
		fn(dark)
	}
}

// Static is an in-memory Signal whose preference is set explicitly.
// It backs the "static" signal setting and drives platform changes in tests.
type Static struct {
	mu        sync.Mutex
	dark      bool
	listeners listeners
}

// NewStatic returns a Static signal with the given initial preference.
func NewStatic(dark bool) *Static {
	return &Static{dark: dark}
}

// PrefersDark implements Signal.
func (s *Static) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Set updates the preference. Subscribers are notified only when the value
// actually changes.
func (s *Static) Set(dark bool) {
	s.mu.Lock()
	changed := s.dark != dark
	s.dark = dark
	s.mu.Unlock()

	if changed {
		s.listeners.emit(dark)
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Static) Subscribers() int {
	return s.listeners.len()
}

// Subscribe implements Signal.
func (s *Static) Subscribe(fn func(bool)) func() {
	id := s.listeners.add(fn)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.listeners.remove(id)
		})
	}
}
