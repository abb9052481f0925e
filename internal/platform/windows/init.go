//go:build windows

package windows

import "github.com/mj1618/desktop-pilot/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		if err := user32.Load(); err != nil {
			return nil, platform.Unavailable("load user32.dll: %v", err)
		}
		// GetCursorPos reports virtualized coordinates until the process is
		// DPI aware; Scale makes it so.
		display := NewDisplay()
		if _, err := display.Scale(); err != nil {
			return nil, err
		}
		return &platform.Provider{
			Input:   NewInput(),
			Display: display,
		}, nil
	}
}
