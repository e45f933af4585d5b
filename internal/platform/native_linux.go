//go:build linux

package platform

import "fmt"

const nativeSignal = SignalPortal

func openNative(name string, opts Options) (*Opened, error) {
	if name != SignalPortal {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	p, err := NewPortal(opts.Logger)
	if err != nil {
		return nil, err
	}
	return &Opened{Signal: p, Closer: p, Source: SignalPortal}, nil
}
