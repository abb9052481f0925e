package platform

import (
	"image"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

// InputBackend posts synthetic keyboard and mouse events.
// Coordinates are in pixels on every backend.
type InputBackend interface {
	KeyToggle(ev KeyEvent) error
	ButtonToggle(button MouseButton, down bool) error
	MoveTo(p geometry.Point) error
	Location() (geometry.Point, error)
	Scroll(direction ScrollDirection, clicks int) error

	// FlagsForChar returns the modifiers the current layout needs to
	// produce c. Most backends return nil.
	FlagsForChar(c rune) []Flag
}

// DisplayBackend queries and captures the main display.
type DisplayBackend interface {
	// Size returns the main display size in logical units.
	Size() (geometry.Size, error)

	// Scale returns how many pixels make up one logical unit.
	Scale() (float64, error)

	// Capture grabs the given rect, in pixels, as an RGBA buffer whose
	// bounds start at (0, 0).
	Capture(pixelRect geometry.Rect) (*image.RGBA, error)
}
