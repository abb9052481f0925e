package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Input   InputBackend
	Display DisplayBackend
}

// ErrUnsupported is returned on platforms without a registered backend.
var ErrUnsupported = fmt.Errorf("desktop-pilot is not supported on %s/%s; supported: darwin, linux (X11), windows", runtime.GOOS, runtime.GOARCH)

// ErrBackendUnavailable wraps OS-level failures: no display session,
// event creation refused, capture denied.
var ErrBackendUnavailable = errors.New("platform backend unavailable")

// NewProviderFunc is set by platform-specific packages via init().
// Blank-import internal/platform/all to register the native backends.
var NewProviderFunc func() (*Provider, error)

// RequestPermissionsFunc is set by platform-specific packages via init().
// It triggers OS permission prompts (e.g. accessibility) at startup.
var RequestPermissionsFunc func()

// ShutdownFunc is set by backends that hold a process-wide connection.
var ShutdownFunc func()

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// Unavailable builds an error wrapping ErrBackendUnavailable.
func Unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBackendUnavailable, fmt.Sprintf(format, args...))
}

// Shutdown releases process-wide backend resources, if any. A later
// NewProvider call may reacquire them.
func Shutdown() {
	if ShutdownFunc != nil {
		ShutdownFunc()
	}
}
