// Package screen answers questions about the main display: its logical size,
// its scale, which points and rects are on it, and the color of a pixel.
package screen

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// ErrDimension is returned when a requested region is not on the screen or
// not inside a bitmap.
var ErrDimension = errors.New("dimensions out of bounds")

// Screen wraps a platform.DisplayBackend.
type Screen struct {
	display platform.DisplayBackend
	logger  *zap.Logger
}

// New returns a Screen over display. A nil logger disables logging.
func New(display platform.DisplayBackend, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{display: display, logger: logger.Named("screen")}
}

// Size returns the main display size in logical units.
func (s *Screen) Size() (geometry.Size, error) {
	size, err := s.display.Size()
	if err != nil {
		return geometry.Size{}, fmt.Errorf("screen size: %w", err)
	}
	return size, nil
}

// Scale returns how many pixels make up one logical unit.
func (s *Screen) Scale() (float64, error) {
	scale, err := s.display.Scale()
	if err != nil {
		return 0, fmt.Errorf("screen scale: %w", err)
	}
	return scale, nil
}

// Bounds returns the screen rect at the zero origin.
func (s *Screen) Bounds() (geometry.Rect, error) {
	size, err := s.Size()
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{Size: size}, nil
}

func (s *Screen) IsPointVisible(p geometry.Point) (bool, error) {
	bounds, err := s.Bounds()
	if err != nil {
		return false, err
	}
	return bounds.IsPointVisible(p), nil
}

func (s *Screen) IsRectVisible(r geometry.Rect) (bool, error) {
	bounds, err := s.Bounds()
	if err != nil {
		return false, err
	}
	return bounds.IsRectVisible(r), nil
}

// CaptureRegion grabs the logical rect r and returns its pixels together with
// the scale they were captured at.
func (s *Screen) CaptureRegion(r geometry.Rect) (*image.RGBA, float64, error) {
	visible, err := s.IsRectVisible(r)
	if err != nil {
		return nil, 0, err
	}
	if !visible {
		return nil, 0, fmt.Errorf("capture %s: %w", r, ErrDimension)
	}
	scale, err := s.Scale()
	if err != nil {
		return nil, 0, err
	}
	img, err := s.display.Capture(r.Scaled(scale))
	if err != nil {
		return nil, 0, fmt.Errorf("capture %s: %w", r, err)
	}
	s.logger.Debug("captured region",
		zap.Stringer("rect", r),
		zap.Float64("scale", scale),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return img, scale, nil
}

// GetColor returns the color of the pixel at p.
func (s *Screen) GetColor(p geometry.Point) (color.RGBA, error) {
	img, _, err := s.CaptureRegion(geometry.Rect{Origin: p, Size: geometry.Size{Width: 1, Height: 1}})
	if err != nil {
		return color.RGBA{}, err
	}
	return img.RGBAAt(img.Bounds().Min.X, img.Bounds().Min.Y), nil
}
