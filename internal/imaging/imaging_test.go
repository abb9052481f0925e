package imaging

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-pilot/internal/geometry"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"jpeg", FormatJPEG, false},
		{"jpg", FormatJPEG, false},
		{"gif", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
	assert.Equal(t, "image/jpeg", FormatJPEG.MIMEType())
	assert.Equal(t, "image/png", FormatPNG.MIMEType())
}

func TestDownscale(t *testing.T) {
	img := solid(100, 50, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	half, err := Downscale(img, 0.5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 50, 25), half.Bounds())
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, ImageToRGBA(half).RGBAAt(10, 10))

	same, err := Downscale(img, 1)
	require.NoError(t, err)
	assert.Same(t, img, same)

	_, err = Downscale(img, 0)
	assert.Error(t, err)
	_, err = Downscale(img, 1.5)
	assert.Error(t, err)
}

func TestPNGRoundTrip(t *testing.T) {
	img := solid(3, 2, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	data, err := EncodeBytes(img, FormatPNG, 0)
	require.NoError(t, err)

	got, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	img := solid(4, 4, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	require.NoError(t, Save(path, img, 0))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, got.Pix)

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestAnnotateMatchesDrawsBox(t *testing.T) {
	img := solid(40, 40, color.RGBA{A: 255})
	out := AnnotateMatches(img, []geometry.Point{{X: 5, Y: 5}}, geometry.Size{Width: 10, Height: 10}, 2)

	assert.Equal(t, boxColor, out.RGBAAt(10, 10), "top-left corner of the scaled box")
	assert.Equal(t, boxColor, out.RGBAAt(29, 10), "top-right corner of the scaled box")
	assert.Equal(t, color.RGBA{A: 255}, out.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(10, 10), "source image must not change")
}

func TestDrawRectangleClamps(t *testing.T) {
	img := solid(5, 5, color.RGBA{A: 255})
	drawRectangle(img, -3, -3, 100, 100, boxColor)
	assert.Equal(t, boxColor, img.RGBAAt(0, 0))
	assert.Equal(t, boxColor, img.RGBAAt(4, 4))
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(2, 2))
}
