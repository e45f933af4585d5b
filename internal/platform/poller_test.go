package platform

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	dark  atomic.Bool
	fail  atomic.Bool
	calls atomic.Int64
}

func (f *fakeDetector) detect() (bool, error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return false, errors.New("sample failed")
	}
	return f.dark.Load(), nil
}

type eventLog struct {
	mu  sync.Mutex
	got []bool
}

func (l *eventLog) record(dark bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.got = append(l.got, dark)
}

func (l *eventLog) events() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.got...)
}

func TestPollerEmitsTransitions(t *testing.T) {
	det := &fakeDetector{}
	p := NewPoller("fake", det.detect, 5*time.Millisecond, zerolog.Nop())
	defer p.Close()

	log := &eventLog{}
	cancel := p.Subscribe(log.record)
	defer cancel()

	// Unchanged samples emit nothing.
	require.Eventually(t, func() bool { return det.calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.Empty(t, log.events())

	det.dark.Store(true)
	require.Eventually(t, func() bool { return len(log.events()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []bool{true}, log.events())
	assert.True(t, p.PrefersDark())

	det.dark.Store(false)
	require.Eventually(t, func() bool { return len(log.events()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []bool{true, false}, log.events())
}

func TestPollerSampleErrorKeepsLastValue(t *testing.T) {
	det := &fakeDetector{}
	det.dark.Store(true)
	p := NewPoller("fake", det.detect, time.Hour, zerolog.Nop())

	require.True(t, p.PrefersDark())

	det.fail.Store(true)
	assert.True(t, p.PrefersDark())
}

func TestPollerStopsWithLastSubscriber(t *testing.T) {
	det := &fakeDetector{}
	p := NewPoller("fake", det.detect, 2*time.Millisecond, zerolog.Nop())

	cancelA := p.Subscribe(func(bool) {})
	cancelB := p.Subscribe(func(bool) {})

	cancelA()
	p.mu.Lock()
	running := p.stop != nil
	p.mu.Unlock()
	assert.True(t, running)

	cancelB()
	p.mu.Lock()
	running = p.stop != nil
	p.mu.Unlock()
	assert.False(t, running)

	// Resubscribing restarts the loop.
	cancelC := p.Subscribe(func(bool) {})
	defer cancelC()
	p.mu.Lock()
	running = p.stop != nil
	p.mu.Unlock()
	assert.True(t, running)
}

func TestNewPollerDefaultsInterval(t *testing.T) {
	p := NewPoller("fake", func() (bool, error) { return false, nil }, 0, zerolog.Nop())
	assert.Equal(t, DefaultPollInterval, p.interval)
	assert.Equal(t, "fake", p.Name())
}

func TestPollerBaselineIsLastValueHandedOut(t *testing.T) {
	det := &fakeDetector{}
	det.fail.Store(true)
	p := NewPoller("fake", det.detect, 5*time.Millisecond, zerolog.Nop())
	defer p.Close()

	log := &eventLog{}
	cancel := p.Subscribe(log.record)
	defer cancel()
	require.False(t, p.PrefersDark())

	// The first good sample differs from what was handed out.
	det.dark.Store(true)
	det.fail.Store(false)
	require.Eventually(t, func() bool { return len(log.events()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, []bool{true}, log.events())
}

func TestPollerReassertsAfterDivergentRead(t *testing.T) {
	det := &fakeDetector{}
	p := NewPoller("fake", det.detect, 5*time.Millisecond, zerolog.Nop())
	defer p.Close()

	log := &eventLog{}
	cancel := p.Subscribe(log.record)
	defer cancel()

	det.dark.Store(true)
	require.True(t, p.PrefersDark())
	det.dark.Store(false)

	// Whoever read true must end up hearing false.
	require.Eventually(t, func() bool {
		got := log.events()
		return len(got) > 0 && !got[len(got)-1]
	}, time.Second, time.Millisecond)
}

func TestPollerPrefersDarkWithoutSubscribersSetsBaseline(t *testing.T) {
	det := &fakeDetector{}
	det.dark.Store(true)
	p := NewPoller("fake", det.detect, 5*time.Millisecond, zerolog.Nop())
	defer p.Close()
	require.True(t, p.PrefersDark())

	log := &eventLog{}
	cancel := p.Subscribe(log.record)
	defer cancel()

	require.Eventually(t, func() bool { return det.calls.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Empty(t, log.events())
}
