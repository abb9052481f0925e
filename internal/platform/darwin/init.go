//go:build darwin && cgo

package darwin

import "github.com/mj1618/desktop-pilot/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		display := NewDisplay()
		if _, err := display.Scale(); err != nil {
			return nil, err
		}
		return &platform.Provider{
			Input:   NewInput(display),
			Display: display,
		}, nil
	}
	platform.RequestPermissionsFunc = RequestPermissions
}
