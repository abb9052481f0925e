package bitmap

import (
	"image"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

// RegionCapturer is satisfied by *screen.Screen.
type RegionCapturer interface {
	Bounds() (geometry.Rect, error)
	CaptureRegion(r geometry.Rect) (*image.RGBA, float64, error)
}

// Capture grabs the whole main display.
func Capture(scr RegionCapturer) (*Bitmap, error) {
	bounds, err := scr.Bounds()
	if err != nil {
		return nil, err
	}
	return CapturePortion(scr, bounds)
}

// CapturePortion grabs the logical rect r of the main display. It returns
// ErrDimension when r is not fully on screen.
func CapturePortion(scr RegionCapturer, r geometry.Rect) (*Bitmap, error) {
	img, scale, err := scr.CaptureRegion(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Min != (image.Point{}) {
		return New(img, scale), nil
	}
	return fromRGBA(img, scale), nil
}
