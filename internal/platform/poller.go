package platform

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultPollInterval is used when a Poller is built with a non-positive interval.
const DefaultPollInterval = 5 * time.Second

// DetectFunc samples the platform preference once.
type DetectFunc func() (prefersDark bool, err error)

// Poller turns a DetectFunc into a Signal by sampling it on an interval while
// at least one subscriber exists. Only the sampling loop emits, whenever a
// good sample differs from the last value handed out.
type Poller struct {
	name     string
	detect   DetectFunc
	interval time.Duration
	logger   zerolog.Logger

	mu sync.Mutex
	// last is the value subscribers were most recently given. While no loop
	// runs it tracks PrefersDark results and becomes the loop's baseline.
	last bool
	// pending is set when PrefersDark handed out a value other than last
	// while subscribed.
	pending   bool
	stop      chan struct{}
	listeners listeners
}

// NewPoller creates a Poller. name identifies the source in logs.
func NewPoller(name string, detect DetectFunc, interval time.Duration, logger zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		name:     name,
		detect:   detect,
		interval: interval,
		logger:   logger.With().Str("signal", name).Logger(),
	}
}

// Name returns the source name.
func (p *Poller) Name() string {
	return p.name
}

// PrefersDark implements Signal. A failed sample returns the last good value.
func (p *Poller) PrefersDark() bool {
	dark, err := p.detect()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.logger.Debug().Err(err).Msg("preference sample failed")
		return p.last
	}
	if p.stop == nil {
		p.last = dark
	} else if dark != p.last {
		// Subscribers were told otherwise; the loop emits on its next good
		// sample even if the value has flipped back by then.
		p.pending = true
	}
	return dark
}

// Subscribe implements Signal. The first subscriber starts the sampling loop
// and the last cancel stops it.
func (p *Poller) Subscribe(fn func(bool)) func() {
	p.mu.Lock()
	id := p.listeners.add(fn)
	if p.stop == nil {
		p.stop = make(chan struct{})
		go p.run(p.stop)
	}
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if _, remaining := p.listeners.remove(id); remaining == 0 {
				p.haltLocked()
			}
		})
	}
}

// Close stops the sampling loop. Subscriptions stay registered but receive no
// further events.
func (p *Poller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
	return nil
}

func (p *Poller) haltLocked() {
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

func (p *Poller) run(stop <-chan struct{}) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Debug().Dur("interval", p.interval).Msg("preference polling started")
	for {
		select {
		case <-stop:
			p.logger.Debug().Msg("preference polling stopped")
			return
		case <-ticker.C:
			dark, err := p.detect()
			if err != nil {
				p.logger.Debug().Err(err).Msg("preference sample failed")
				continue
			}
			p.mu.Lock()
			changed := dark != p.last || p.pending
			p.last, p.pending = dark, false
			p.mu.Unlock()

			if changed {
				p.logger.Debug().Bool("prefers_dark", dark).Msg("preference changed")
				p.listeners.emit(dark)
			}
		}
	}
}
