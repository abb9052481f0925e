//go:build windows

package windows

import (
	"image"
	"sync"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/capture"
)

// Display implements platform.DisplayBackend for the primary monitor.
type Display struct {
	once  sync.Once
	scale float64
}

// NewDisplay creates a new Windows display backend.
func NewDisplay() *Display {
	return &Display{}
}

// Scale marks the process DPI aware and reads the desktop window DPI
// relative to 96. Systems without GetDpiForWindow report 1.
func (d *Display) Scale() (float64, error) {
	d.once.Do(func() {
		d.scale = 1
		if procSetProcessDPIAware.Find() == nil {
			procSetProcessDPIAware.Call()
		}
		if procGetDpiForWindow.Find() != nil {
			return
		}
		hwnd, _, _ := procGetDesktopWindow.Call()
		if dpi, _, _ := procGetDpiForWindow.Call(hwnd); dpi != 0 {
			d.scale = float64(dpi) / 96
		}
	})
	return d.scale, nil
}

// Size returns the primary monitor size in points.
func (d *Display) Size() (geometry.Size, error) {
	scale, err := d.Scale()
	if err != nil {
		return geometry.Size{}, err
	}
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	if w == 0 || h == 0 {
		return geometry.Size{}, platform.Unavailable("GetSystemMetrics returned an empty screen")
	}
	return geometry.Size{Width: float64(int32(w)), Height: float64(int32(h))}.Scaled(1 / scale), nil
}

func (d *Display) Capture(pixelRect geometry.Rect) (*image.RGBA, error) {
	return capture.Rect(pixelRect)
}
