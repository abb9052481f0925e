package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/key"
	"github.com/mj1618/desktop-pilot/internal/mouse"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/simulated"
)

func noSleep(time.Duration) {}

func newTestServer(t *testing.T, b *simulated.Backend) *Server {
	t.Helper()
	p := pilot.New(b.Provider(), config.NewDefaultConfig(), nil, pilot.Options{
		MouseOptions:    []mouse.Option{mouse.WithSleeper(noSleep)},
		KeyboardOptions: []key.Option{key.WithSleeper(noSleep)},
	})
	return New(p, Config{Transport: "stdio", CacheTTL: time.Minute}, nil)
}

func callTool(t *testing.T, h mcpserver.ToolHandlerFunc, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "first content should be text, got %T", res.Content[0])
	return tc.Text
}

func decodeText(t *testing.T, res *mcp.CallToolResult, v interface{}) {
	t.Helper()
	require.False(t, res.IsError, textOf(t, res))
	require.NoError(t, yaml.Unmarshal([]byte(textOf(t, res)), v))
}

func randomFrame(w, h int, seed int64) *image.RGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img
}

func TestScreenInfo(t *testing.T) {
	s := newTestServer(t, simulated.New(200, 100, 2))

	var info output.ScreenInfo
	decodeText(t, callTool(t, s.tool("screen_info", false, s.handleScreenInfo), nil), &info)

	assert.Equal(t, output.ScreenInfo{Width: 100, Height: 50, Scale: 2, PixelWidth: 200, PixelHeight: 100}, info)
}

func TestMouseMove(t *testing.T) {
	b := simulated.New(200, 100, 2)
	s := newTestServer(t, b)

	var ack output.ActionResult
	decodeText(t, callTool(t, s.tool("mouse_move", true, s.handleMouseMove), map[string]interface{}{
		"x": 10.0, "y": 20.0,
	}), &ack)

	assert.True(t, ack.OK)
	require.NotNil(t, ack.Cursor)
	assert.Equal(t, output.PointResult{X: 10, Y: 20}, *ack.Cursor)
	events := b.Events()
	require.Len(t, events, 1)
	assert.Equal(t, geometry.Point{X: 20, Y: 40}, events[0].Point)
}

func TestMouseMoveErrors(t *testing.T) {
	s := newTestServer(t, simulated.New(200, 100, 1))
	h := s.tool("mouse_move", true, s.handleMouseMove)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing both", map[string]interface{}{}, "required"},
		{"missing y", map[string]interface{}{"x": 1.0}, "together"},
		{"off screen", map[string]interface{}{"x": 500.0, "y": 1.0}, "out of bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, h, tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, textOf(t, res), tt.want)
		})
	}
}

func TestMouseClickDouble(t *testing.T) {
	b := simulated.New(200, 100, 1)
	s := newTestServer(t, b)

	res := callTool(t, s.tool("mouse_click", true, s.handleMouseClick), map[string]interface{}{
		"button": "right", "x": 5.0, "y": 6.0, "double": true,
	})
	require.False(t, res.IsError, textOf(t, res))

	var buttons []simulated.Event
	for _, ev := range b.Events() {
		if ev.Kind == simulated.EventButton {
			buttons = append(buttons, ev)
		}
	}
	require.Len(t, buttons, 4)
	for i, ev := range buttons {
		assert.Equal(t, platform.MouseRight, ev.Button)
		assert.Equal(t, i%2 == 0, ev.Down)
	}
}

func TestMouseScrollDefaults(t *testing.T) {
	b := simulated.New(200, 100, 1)
	s := newTestServer(t, b)

	res := callTool(t, s.tool("mouse_scroll", true, s.handleMouseScroll), map[string]interface{}{
		"direction": "down",
	})
	require.False(t, res.IsError, textOf(t, res))

	events := b.Events()
	require.Len(t, events, 1)
	assert.Equal(t, simulated.EventScroll, events[0].Kind)
	assert.Equal(t, platform.ScrollDown, events[0].Direction)
	assert.Equal(t, 3, events[0].Clicks)

	res = callTool(t, s.tool("mouse_scroll", true, s.handleMouseScroll), map[string]interface{}{
		"direction": "sideways",
	})
	assert.True(t, res.IsError)
}

func TestPixelColor(t *testing.T) {
	b := simulated.New(50, 50, 1)
	want := color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	b.SetPixel(7, 8, want)
	s := newTestServer(t, b)
	h := s.tool("pixel_color", false, s.handlePixelColor)

	var got output.ColorResult
	decodeText(t, callTool(t, h, map[string]interface{}{"x": 7.0, "y": 8.0}), &got)
	assert.Equal(t, "#123456", got.Hex)

	b.SetCursor(geometry.Point{X: 7, Y: 8})
	var atCursor output.ColorResult
	decodeText(t, callTool(t, h, nil), &atCursor)
	assert.Equal(t, got, atCursor)
}

func TestTypeTextAndKeyTap(t *testing.T) {
	b := simulated.New(50, 50, 1)
	s := newTestServer(t, b)

	res := callTool(t, s.tool("type_text", true, s.handleTypeText), map[string]interface{}{
		"text": "ab", "wpm": 0.0,
	})
	require.False(t, res.IsError, textOf(t, res))
	assert.Len(t, b.Events(), 4)

	b.Reset()
	res = callTool(t, s.tool("key_tap", true, s.handleKeyTap), map[string]interface{}{
		"key": "enter", "flags": "meta",
	})
	require.False(t, res.IsError, textOf(t, res))
	events := b.Events()
	require.Len(t, events, 2)
	assert.Equal(t, platform.KeyReturn, events[0].Key.Code)
	assert.Equal(t, []platform.Flag{platform.FlagMeta}, events[0].Key.Flags)

	res = callTool(t, s.tool("key_tap", true, s.handleKeyTap), map[string]interface{}{"key": "nosuchkey"})
	assert.True(t, res.IsError)
}

func TestScreenshotReturnsImage(t *testing.T) {
	s := newTestServer(t, simulated.New(40, 20, 1, simulated.WithFrame(randomFrame(40, 20, 1))))

	res := callTool(t, s.tool("screenshot", false, s.handleScreenshot), map[string]interface{}{"scale": 0.5})
	require.False(t, res.IsError, textOf(t, res))
	require.Len(t, res.Content, 2)

	ic, ok := res.Content[1].(mcp.ImageContent)
	require.True(t, ok)
	assert.Equal(t, "image/png", ic.MIMEType)
	data, err := base64.StdEncoding.DecodeString(ic.Data)
	require.NoError(t, err)
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())

	res = callTool(t, s.tool("screenshot", false, s.handleScreenshot), map[string]interface{}{"x": 1.0})
	assert.True(t, res.IsError)
}

func TestFindImage(t *testing.T) {
	frame := randomFrame(60, 40, 7)
	b := simulated.New(60, 40, 1, simulated.WithFrame(frame))
	s := newTestServer(t, b)

	crop, err := bitmap.New(frame, 1).Cropped(geometry.NewRect(17, 9, 8, 6))
	require.NoError(t, err)
	data, err := imaging.EncodeBytes(crop.Image(), imaging.FormatPNG, 0)
	require.NoError(t, err)

	res := callTool(t, s.tool("find_image", false, s.handleFindImage), map[string]interface{}{
		"needle_base64": base64.StdEncoding.EncodeToString(data),
		"annotate":      true,
	})
	var found output.FindResult
	decodeText(t, res, &found)

	assert.True(t, found.Found)
	require.Len(t, found.Matches, 1)
	assert.Equal(t, output.PointResult{X: 17, Y: 9}, found.Matches[0])
	require.Len(t, res.Content, 2)
	_, ok := res.Content[1].(mcp.ImageContent)
	assert.True(t, ok)
}

func TestFindImageInvalidArguments(t *testing.T) {
	frame := randomFrame(30, 30, 3)
	s := newTestServer(t, simulated.New(30, 30, 1, simulated.WithFrame(frame)))
	data, err := imaging.EncodeBytes(frame.SubImage(image.Rect(0, 0, 4, 4)), imaging.FormatPNG, 0)
	require.NoError(t, err)
	needle := base64.StdEncoding.EncodeToString(data)
	h := s.tool("find_image", false, s.handleFindImage)

	res := callTool(t, h, map[string]interface{}{"needle_base64": needle, "tolerance": 2.0})
	assert.True(t, res.IsError)
	assert.Contains(t, textOf(t, res), "invalid argument")

	res = callTool(t, h, map[string]interface{}{})
	assert.True(t, res.IsError)

	res = callTool(t, h, map[string]interface{}{"needle_base64": "!!!"})
	assert.True(t, res.IsError)
}

func TestInputToolsInvalidateFrameCache(t *testing.T) {
	b := simulated.New(20, 20, 1)
	s := newTestServer(t, b)

	first, err := s.capture(nil)
	require.NoError(t, err)
	b.SetPixel(0, 0, color.RGBA{R: 9, A: 0xff})

	cached, err := s.capture(nil)
	require.NoError(t, err)
	assert.Same(t, first, cached)

	callTool(t, s.tool("mouse_move", true, s.handleMouseMove), map[string]interface{}{"x": 1.0, "y": 1.0})

	fresh, err := s.capture(nil)
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
	assert.Equal(t, uint8(9), fresh.Image().Pix[0])
}

func TestServeUnknownTransport(t *testing.T) {
	s := newTestServer(t, simulated.New(10, 10, 1))
	assert.Error(t, s.Serve(Config{Transport: "carrier-pigeon"}))
	assert.NotNil(t, s.MCP())
}
