package imaging

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

var (
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// AnnotateMatches returns a copy of img with a box of the needle's size
// drawn at each match and the match's "(x,y)" point coordinates at its
// center. Matches and size are in points; scale converts them to the
// image's pixels.
func AnnotateMatches(img image.Image, matches []geometry.Point, needle geometry.Size, scale float64) *image.RGBA {
	src := ImageToRGBA(img)
	rgba := image.NewRGBA(src.Bounds())
	copy(rgba.Pix, src.Pix)

	for _, m := range matches {
		px := m.Scaled(scale).Round()
		sz := needle.Scaled(scale).Round()
		x, y := int(px.X)+rgba.Rect.Min.X, int(px.Y)+rgba.Rect.Min.Y
		w, h := int(sz.Width), int(sz.Height)
		drawRectangle(rgba, x, y, x+w, y+h, boxColor)
		label := fmt.Sprintf("(%s,%s)", trim(m.X), trim(m.Y))
		drawTextWithOutline(rgba, label, x+w/2, y+h/2, textColor, outlineColor)
	}
	return rgba
}

func trim(f float64) string {
	return fmt.Sprintf("%g", f)
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline, clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline centers text on (x, y) with a one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, fg, outline color.Color) {
	// basicfont.Face7x13: 7 pixels per glyph, 13 pixels high.
	offsetX := x - len(text)*7/2
	offsetY := y + 13/2

	draw := func(dx, dy int, c color.Color) {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(offsetX+dx, offsetY+dy),
		}
		d.DrawString(text)
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx != 0 || dy != 0 {
				draw(dx, dy, outline)
			}
		}
	}
	draw(0, 0, fg)
}
