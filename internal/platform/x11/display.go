//go:build linux && cgo

package x11

/*
#include <X11/Xlib.h>
*/
import "C"

import (
	"image"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform/capture"
)

// Display implements platform.DisplayBackend for the default X screen.
type Display struct{}

// NewDisplay creates a new X11 display backend.
func NewDisplay() *Display {
	return &Display{}
}

// Size returns the default screen size in points.
func (Display) Size() (geometry.Size, error) {
	var size geometry.Size
	err := withDisplay(func(d *C.Display) error {
		screen := C.XDefaultScreen(d)
		size = geometry.Size{
			Width:  float64(C.XDisplayWidth(d, screen)),
			Height: float64(C.XDisplayHeight(d, screen)),
		}.Scaled(1 / conn.scale)
		return nil
	})
	return size, err
}

// Scale prefers the Xft.dpi resource and falls back to the physical DPI
// reported by the server. The value is fixed for the life of a connection.
func (Display) Scale() (float64, error) {
	var scale float64
	err := withDisplay(func(*C.Display) error {
		scale = conn.scale
		return nil
	})
	return scale, err
}

func (Display) Capture(pixelRect geometry.Rect) (*image.RGBA, error) {
	return capture.Rect(pixelRect)
}
