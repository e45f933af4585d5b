//go:build darwin

package platform

import "fmt"

const nativeSignal = SignalDefaults

func openNative(name string, opts Options) (*Opened, error) {
	if name != SignalDefaults {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	p := NewDefaults(opts.PollInterval, opts.Logger)
	return &Opened{Signal: p, Closer: p, Source: SignalDefaults}, nil
}
