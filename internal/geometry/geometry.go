// Package geometry holds the point, size and rect value types shared by the
// screen, bitmap and mouse packages. Coordinates are float64 and, unless a
// function says otherwise, in logical units (pixels divided by the display
// scale).
package geometry

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a location on screen.
type Point struct {
	X, Y float64
}

// Size is a width and height.
type Size struct {
	Width, Height float64
}

// Rect is an origin plus a size. Queries treat the max edges as exclusive.
type Rect struct {
	Origin Point
	Size   Size
}

var (
	ZeroPoint = Point{}
	ZeroSize  = Size{}
	ZeroRect  = Rect{}
)

// PointKey, SizeKey and RectKey are integer-truncated forms usable as map keys.
type PointKey struct{ X, Y int64 }

type SizeKey struct{ Width, Height int64 }

type RectKey struct {
	Origin PointKey
	Size   SizeKey
}

// NewRect builds a rect from its four components.
func NewRect(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

// PointFromPixel converts a pixel coordinate to logical units.
func PointFromPixel(x, y, scale float64) Point {
	return Point{X: x / scale, Y: y / scale}
}

func (p Point) Scaled(m float64) Point {
	return Point{X: p.X * m, Y: p.Y * m}
}

// Round rounds half away from zero.
func (p Point) Round() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Distance returns the straight-line distance to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func (p Point) HashKey() PointKey {
	return PointKey{X: int64(p.X), Y: int64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatFloat(p.X), formatFloat(p.Y))
}

func (s Size) Scaled(m float64) Size {
	return Size{Width: s.Width * m, Height: s.Height * m}
}

func (s Size) Round() Size {
	return Size{Width: math.Round(s.Width), Height: math.Round(s.Height)}
}

func (s Size) HashKey() SizeKey {
	return SizeKey{Width: int64(s.Width), Height: int64(s.Height)}
}

func (s Size) String() string {
	return fmt.Sprintf("(%s, %s)", formatFloat(s.Width), formatFloat(s.Height))
}

func (r Rect) Scaled(m float64) Rect {
	return Rect{Origin: r.Origin.Scaled(m), Size: r.Size.Scaled(m)}
}

func (r Rect) Round() Rect {
	return Rect{Origin: r.Origin.Round(), Size: r.Size.Round()}
}

func (r Rect) MaxX() float64 { return r.Origin.X + r.Size.Width }

func (r Rect) MaxY() float64 { return r.Origin.Y + r.Size.Height }

func (r Rect) HashKey() RectKey {
	return RectKey{Origin: r.Origin.HashKey(), Size: r.Size.HashKey()}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%s, %s)", r.Origin, r.Size)
}

// IsPointVisible reports whether p lies inside r, max edges excluded.
func (r Rect) IsPointVisible(p Point) bool {
	return p.X >= r.Origin.X &&
		p.Y >= r.Origin.Y &&
		p.X < r.MaxX() &&
		p.Y < r.MaxY()
}

// IsRectVisible reports whether o fits inside r.
//
// The extent check adds r's own origin to o's far edge and compares against
// r's size rather than its max edge. For rects at the zero origin (the only
// way the screen and bitmap packages call it) this is the plain containment
// test; for offset rects it is stricter than containment.
func (r Rect) IsRectVisible(o Rect) bool {
	return r.IsPointVisible(o.Origin) &&
		o.Size.Width+o.Origin.X+r.Origin.X <= r.Size.Width &&
		o.Size.Height+o.Origin.Y+r.Origin.Y <= r.Size.Height
}

// IterPoint returns the point after p in scan order: down the column first,
// then to the top of the next column. ok is false once p is the last point.
func (r Rect) IterPoint(p Point) (next Point, ok bool) {
	switch {
	case p.Y+1 < r.MaxY():
		return Point{X: p.X, Y: p.Y + 1}, true
	case p.X+1 < r.MaxX():
		return Point{X: p.X + 1, Y: r.Origin.Y}, true
	default:
		return Point{}, false
	}
}

// ParseRect parses an "x,y,w,h" string into a Rect.
func ParseRect(s string) (Rect, error) {
	vals, err := parseFloats(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	return NewRect(vals[0], vals[1], vals[2], vals[3]), nil
}

// ParsePoint parses an "x,y" string into a Point.
func ParsePoint(s string) (Point, error) {
	vals, err := parseFloats(s, 2)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: vals[0], Y: vals[1]}, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %d", n, len(parts))
	}
	vals := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
