// Package all registers every native backend that builds on the current OS.
// Import it for side effects from main packages.
package all

import (
	_ "github.com/mj1618/desktop-pilot/internal/platform/darwin"
	_ "github.com/mj1618/desktop-pilot/internal/platform/windows"
	_ "github.com/mj1618/desktop-pilot/internal/platform/x11"
)
