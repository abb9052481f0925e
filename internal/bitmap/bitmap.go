// Package bitmap holds captured pixel buffers and searches them for colors
// and for smaller bitmaps.
package bitmap

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/draw"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

// Bitmap is an immutable RGBA buffer tagged with the scale it was captured
// at. Size is in logical units: pixel dimensions divided by scale.
type Bitmap struct {
	img   *image.RGBA
	size  geometry.Size
	scale float64
}

// New copies img into a Bitmap. A scale of zero or less means 1.
func New(img image.Image, scale float64) *Bitmap {
	if scale <= 0 {
		scale = 1
	}
	r := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, r.Min, draw.Src)
	return fromRGBA(rgba, scale)
}

// fromRGBA takes ownership of img, whose bounds must start at (0, 0).
func fromRGBA(img *image.RGBA, scale float64) *Bitmap {
	return &Bitmap{
		img: img,
		size: geometry.Size{
			Width:  float64(img.Bounds().Dx()) / scale,
			Height: float64(img.Bounds().Dy()) / scale,
		},
		scale: scale,
	}
}

func (b *Bitmap) Size() geometry.Size { return b.size }

func (b *Bitmap) Scale() float64 { return b.scale }

// Bounds returns the logical rect of the bitmap at the zero origin.
func (b *Bitmap) Bounds() geometry.Rect {
	return geometry.Rect{Size: b.size}
}

// Image returns a copy of the pixel buffer.
func (b *Bitmap) Image() *image.RGBA {
	out := image.NewRGBA(b.img.Bounds())
	copy(out.Pix, b.img.Pix)
	return out
}

func (b *Bitmap) String() string {
	return fmt.Sprintf("Bitmap{size: %s, scale: %g}", b.size, b.scale)
}

// Cropped returns a new bitmap holding the logical rect r.
func (b *Bitmap) Cropped(r geometry.Rect) (*Bitmap, error) {
	if !b.Bounds().IsRectVisible(r) {
		return nil, fmt.Errorf("crop %s from %s: %w", r, b.Bounds(), ErrDimension)
	}
	pr := r.Scaled(b.scale).Round()
	src := image.Rect(
		int(pr.Origin.X), int(pr.Origin.Y),
		int(pr.MaxX()), int(pr.MaxY()),
	).Intersect(b.img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(out, out.Bounds(), b.img, src.Min, draw.Src)
	return fromRGBA(out, b.scale), nil
}

// GetPixel returns the color at p. The point is mapped with the inverse of
// the bitmap scale; at scale 1 that is the identity. It panics with an
// *InvalidArgumentError when the mapped pixel is outside the buffer.
func (b *Bitmap) GetPixel(p geometry.Point) color.RGBA {
	q := p.Scaled(b.multiplier()).Round()
	x, y := int(q.X), int(q.Y)
	if !(image.Point{X: x, Y: y}).In(b.img.Bounds()) {
		invalidArgument("pixel %s outside of image bounds (%s)", q, b.Bounds())
	}
	return b.img.RGBAAt(x, y)
}

// Equal reports whether both bitmaps have the same size, scale and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	return b.BitmapEqual(o, 0)
}

// BitmapEqual is Equal with a color tolerance in [0, 1].
func (b *Bitmap) BitmapEqual(needle *Bitmap, tolerance float64) bool {
	return b.size == needle.size &&
		b.scale == needle.scale &&
		b.isNeedleAt(geometry.ZeroPoint, needle, tolerance)
}

// Hash is a 64-bit FNV-1a hash of the pixels, the truncated size and the
// truncated scale. Equal bitmaps hash equally.
func (b *Bitmap) Hash() uint64 {
	h := fnv.New64a()
	h.Write(b.img.Pix)
	key := b.size.HashKey()
	var buf [8]byte
	for _, v := range []int64{key.Width, key.Height, int64(b.scale)} {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func (b *Bitmap) multiplier() float64 {
	return 1 / b.scale
}
