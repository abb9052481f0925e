package output

import (
	"fmt"
	"image/color"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

// ScreenInfo describes the main display.
type ScreenInfo struct {
	Width       float64 `yaml:"width"        json:"width"`
	Height      float64 `yaml:"height"       json:"height"`
	Scale       float64 `yaml:"scale"        json:"scale"`
	PixelWidth  int     `yaml:"pixel_width"  json:"pixel_width"`
	PixelHeight int     `yaml:"pixel_height" json:"pixel_height"`
}

// NewScreenInfo builds a ScreenInfo from a size in points and a scale.
func NewScreenInfo(size geometry.Size, scale float64) ScreenInfo {
	px := size.Scaled(scale).Round()
	return ScreenInfo{
		Width:       size.Width,
		Height:      size.Height,
		Scale:       scale,
		PixelWidth:  int(px.Width),
		PixelHeight: int(px.Height),
	}
}

// PointResult is a point in screen points.
type PointResult struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// NewPoint converts a geometry point.
func NewPoint(p geometry.Point) PointResult {
	return PointResult{X: p.X, Y: p.Y}
}

// ColorResult is the color sampled at a point.
type ColorResult struct {
	X   float64 `yaml:"x"   json:"x"`
	Y   float64 `yaml:"y"   json:"y"`
	Hex string  `yaml:"hex" json:"hex"`
	R   uint8   `yaml:"r"   json:"r"`
	G   uint8   `yaml:"g"   json:"g"`
	B   uint8   `yaml:"b"   json:"b"`
	A   uint8   `yaml:"a"   json:"a"`
}

// NewColor builds a ColorResult for c sampled at p.
func NewColor(p geometry.Point, c color.RGBA) ColorResult {
	return ColorResult{X: p.X, Y: p.Y, Hex: Hex(c), R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats the RGB channels of c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// VisibleResult answers a visibility query.
type VisibleResult struct {
	Visible bool `yaml:"visible" json:"visible"`
}

// FindResult is the outcome of a color or image search.
type FindResult struct {
	Found     bool          `yaml:"found"             json:"found"`
	Count     int           `yaml:"count"             json:"count"`
	Matches   []PointResult `yaml:"matches,omitempty" json:"matches,omitempty"`
	Tolerance float64       `yaml:"tolerance"         json:"tolerance"`
}

// NewFindResult converts search matches. A nil slice with count > 0 is a
// count-only result.
func NewFindResult(matches []geometry.Point, count int, tolerance float64) FindResult {
	res := FindResult{Count: count, Tolerance: tolerance}
	for _, m := range matches {
		res.Matches = append(res.Matches, NewPoint(m))
	}
	if res.Count < len(res.Matches) {
		res.Count = len(res.Matches)
	}
	res.Found = res.Count > 0
	return res
}

// ScreenshotResult reports a saved capture.
type ScreenshotResult struct {
	Path   string  `yaml:"path"   json:"path"`
	Width  int     `yaml:"width"  json:"width"`
	Height int     `yaml:"height" json:"height"`
	Scale  float64 `yaml:"scale"  json:"scale"`
}

// ActionResult acknowledges an input action.
type ActionResult struct {
	OK     bool         `yaml:"ok"                 json:"ok"`
	Action string       `yaml:"action"             json:"action"`
	Detail string       `yaml:"detail,omitempty"   json:"detail,omitempty"`
	Cursor *PointResult `yaml:"cursor,omitempty"   json:"cursor,omitempty"`
}
