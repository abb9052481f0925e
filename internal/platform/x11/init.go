//go:build linux && cgo

package x11

import "github.com/mj1618/desktop-pilot/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		display := NewDisplay()
		if _, err := display.Scale(); err != nil {
			return nil, err
		}
		return &platform.Provider{
			Input:   NewInput(),
			Display: display,
		}, nil
	}
	platform.ShutdownFunc = Shutdown
}
