package bitmap

import (
	"image/color"
	"math"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

// maxColorDistance is the Euclidean RGB distance between black and white.
const maxColorDistance = 441.6729559301

// SearchOptions narrows a search. A nil Rect means the whole bitmap; a nil
// Start means the origin of the search rect. Tolerance runs from 0 (exact
// match) to 1 (matches anything).
type SearchOptions struct {
	Tolerance float64
	Rect      *geometry.Rect
	Start     *geometry.Point
}

// ColorsMatch reports whether c1 and c2 are within tolerance of each other.
// Zero tolerance compares all four channels exactly; otherwise alpha is
// ignored and the RGB distance is compared against tolerance times the
// largest possible distance. It panics with an *InvalidArgumentError when
// tolerance is outside [0, 1].
func ColorsMatch(c1, c2 color.RGBA, tolerance float64) bool {
	if !(tolerance >= 0 && tolerance <= 1) {
		invalidArgument("tolerance must be between 0 and 1, got %g", tolerance)
	}
	if tolerance == 0 {
		return c1 == c2
	}
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)
	return math.Sqrt(dr*dr+dg*dg+db*db) <= tolerance*maxColorDistance
}

// FindColor returns the first point matching c, in scan order.
func (b *Bitmap) FindColor(c color.RGBA, opts SearchOptions) (geometry.Point, bool) {
	return b.find(opts, b.colorAt(c, opts.Tolerance))
}

// FindEveryColor returns every point matching c, in scan order.
func (b *Bitmap) FindEveryColor(c color.RGBA, opts SearchOptions) []geometry.Point {
	var points []geometry.Point
	b.findAll(opts, b.colorAt(c, opts.Tolerance), func(p geometry.Point) {
		points = append(points, p)
	})
	return points
}

// CountOfColor returns the number of points matching c.
func (b *Bitmap) CountOfColor(c color.RGBA, opts SearchOptions) int {
	n := 0
	b.findAll(opts, b.colorAt(c, opts.Tolerance), func(geometry.Point) { n++ })
	return n
}

// FindBitmap returns the first point where needle appears, in scan order.
// Needles larger than the bitmap, or captured at a higher scale, are never
// found.
func (b *Bitmap) FindBitmap(needle *Bitmap, opts SearchOptions) (geometry.Point, bool) {
	if b.isNeedleOversized(needle) {
		return geometry.Point{}, false
	}
	return b.find(opts, b.needleAt(needle, opts.Tolerance))
}

// FindEveryBitmap returns every point where needle appears, in scan order.
func (b *Bitmap) FindEveryBitmap(needle *Bitmap, opts SearchOptions) []geometry.Point {
	if b.isNeedleOversized(needle) {
		return nil
	}
	var points []geometry.Point
	b.findAll(opts, b.needleAt(needle, opts.Tolerance), func(p geometry.Point) {
		points = append(points, p)
	})
	return points
}

// CountOfBitmap returns the number of places needle appears.
func (b *Bitmap) CountOfBitmap(needle *Bitmap, opts SearchOptions) int {
	if b.isNeedleOversized(needle) {
		return 0
	}
	n := 0
	b.findAll(opts, b.needleAt(needle, opts.Tolerance), func(geometry.Point) { n++ })
	return n
}

func (b *Bitmap) colorAt(c color.RGBA, tolerance float64) func(geometry.Point) bool {
	return func(p geometry.Point) bool {
		return ColorsMatch(c, b.GetPixel(p), tolerance)
	}
}

func (b *Bitmap) needleAt(needle *Bitmap, tolerance float64) func(geometry.Point) bool {
	return func(p geometry.Point) bool {
		return b.isNeedleAt(p, needle, tolerance)
	}
}

func (b *Bitmap) isNeedleOversized(needle *Bitmap) bool {
	return needle.scale > b.scale ||
		needle.size.Width > b.size.Width ||
		needle.size.Height > b.size.Height
}

// isNeedleAt walks the needle's logical bounds and compares each pixel with
// the haystack pixel offset by p. Any haystack point off the bitmap rejects
// the candidate.
func (b *Bitmap) isNeedleAt(p geometry.Point, needle *Bitmap, tolerance float64) bool {
	nb := needle.Bounds()
	bounds := b.Bounds()
	for x := int64(nb.Origin.X); x < int64(nb.MaxX()); x++ {
		for y := int64(nb.Origin.Y); y < int64(nb.MaxY()); y++ {
			np := geometry.Point{X: float64(x), Y: float64(y)}
			hp := geometry.Point{X: p.X + np.X, Y: p.Y + np.Y}
			if !bounds.IsPointVisible(hp) {
				return false
			}
			if !ColorsMatch(needle.GetPixel(np), b.GetPixel(hp), tolerance) {
				return false
			}
		}
	}
	return true
}

// resolve applies the SearchOptions defaults and checks the preconditions.
func (b *Bitmap) resolve(opts SearchOptions) (geometry.Rect, geometry.Point) {
	rect := b.Bounds()
	if opts.Rect != nil {
		rect = *opts.Rect
	}
	start := rect.Origin
	if opts.Start != nil {
		start = *opts.Start
	}
	if !b.Bounds().IsRectVisible(rect) {
		invalidArgument("rect %s outside of image bounds (%s)", rect, b.Bounds())
	}
	if !b.Bounds().IsPointVisible(start) {
		invalidArgument("start point %s outside of image bounds (%s)", start, b.Bounds())
	}
	if !(opts.Tolerance >= 0 && opts.Tolerance <= 1) {
		invalidArgument("tolerance must be between 0 and 1, got %g", opts.Tolerance)
	}
	return rect, start
}

// find scans x-major from start: the rest of start's column first, then each
// following column from the rect's top edge. The match is returned in the
// bitmap's scaled coordinates.
func (b *Bitmap) find(opts SearchOptions, match func(geometry.Point) bool) (geometry.Point, bool) {
	rect, start := b.scanArea(opts)
	q, ok := scan(rect, start, match)
	if !ok {
		return geometry.Point{}, false
	}
	return q.Scaled(b.scale).Round(), true
}

// findAll reports every match. Each scan resumes at the scan point after the
// previous match, so the walk always moves forward whatever the scale.
func (b *Bitmap) findAll(opts SearchOptions, match func(geometry.Point) bool, matched func(geometry.Point)) {
	rect, start := b.scanArea(opts)
	for {
		q, ok := scan(rect, start, match)
		if !ok {
			return
		}
		matched(q.Scaled(b.scale).Round())
		if start, ok = rect.IterPoint(q); !ok {
			return
		}
	}
}

// scanArea resolves opts and maps the rect and start into scan coordinates.
func (b *Bitmap) scanArea(opts SearchOptions) (geometry.Rect, geometry.Point) {
	rect, start := b.resolve(opts)
	return rect.Scaled(b.multiplier()).Round(), start.Scaled(b.multiplier()).Round()
}

func scan(rect geometry.Rect, start geometry.Point, match func(geometry.Point) bool) (geometry.Point, bool) {
	startY := int64(start.Y)
	for x := int64(start.X); x < int64(rect.MaxX()); x++ {
		for y := startY; y < int64(rect.MaxY()); y++ {
			p := geometry.Point{X: float64(x), Y: float64(y)}
			if match(p) {
				return p, true
			}
		}
		startY = int64(rect.Origin.Y)
	}
	return geometry.Point{}, false
}
