// Package capture grabs screen pixels through github.com/kbinani/screenshot
// for the backends that have no native capture path of their own.
package capture

import (
	"image"
	"image/draw"

	"github.com/kbinani/screenshot"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Rect captures a rectangle given in pixels. The result is anchored at
// (0, 0) and fully opaque.
func Rect(pixelRect geometry.Rect) (*image.RGBA, error) {
	r := pixelRect.Round()
	bounds := image.Rect(
		int(r.Origin.X), int(r.Origin.Y),
		int(r.MaxX()), int(r.MaxY()),
	)
	if bounds.Empty() {
		return nil, platform.Unavailable("empty capture rect %s", pixelRect)
	}
	img, err := screenshot.CaptureRect(bounds)
	if err != nil {
		return nil, platform.Unavailable("capture %s: %v", pixelRect, err)
	}
	return Normalize(img), nil
}

// Normalize moves img to the origin and forces every alpha byte to 255.
func Normalize(img *image.RGBA) *image.RGBA {
	if img.Bounds().Min != (image.Point{}) {
		out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
		draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
		img = out
	}
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}
