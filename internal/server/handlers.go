package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/key"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

type toolFunc func(ctx context.Context, params map[string]interface{}) (*mcp.CallToolResult, error)

// tool wraps fn: it serializes calls, tags the log lines with a request id,
// turns errors and invalid-argument panics into error results, and drops
// the frame cache after input tools.
func (s *Server) tool(name string, input bool, fn toolFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		logger := s.logger.With(zap.String("tool", name), zap.String("request_id", uuid.NewString()))
		params := request.GetArguments()

		s.pilotMu.Lock()
		defer s.pilotMu.Unlock()

		start := time.Now()
		result, err := invoke(ctx, fn, params)
		if input {
			s.cache.Invalidate()
		}
		if err != nil {
			logger.Warn("tool failed", zap.Error(err))
			return mcp.NewToolResultError(err.Error()), nil
		}
		logger.Debug("tool done", zap.Duration("elapsed", time.Since(start)))
		return result, nil
	}
}

func invoke(ctx context.Context, fn toolFunc, params map[string]interface{}) (result *mcp.CallToolResult, err error) {
	defer bitmap.Recover(&err)
	return fn(ctx, params)
}

// resultToText serializes v to YAML for the MCP response.
func resultToText(v interface{}) *mcp.CallToolResult {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err))
	}
	return mcp.NewToolResultText(string(b))
}

func imageContent(data []byte, mimeType string) mcp.ImageContent {
	return mcp.ImageContent{
		Type:     "image",
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}
}

func (s *Server) cursor() (*output.PointResult, error) {
	loc, err := s.pilot.Mouse.Location()
	if err != nil {
		return nil, err
	}
	p := output.NewPoint(loc)
	return &p, nil
}

func (s *Server) ack(action, detail string) (*mcp.CallToolResult, error) {
	cur, err := s.cursor()
	if err != nil {
		return nil, err
	}
	return resultToText(output.ActionResult{OK: true, Action: action, Detail: detail, Cursor: cur}), nil
}

func (s *Server) handleScreenInfo(_ context.Context, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	size, err := s.pilot.Screen.Size()
	if err != nil {
		return nil, err
	}
	scale, err := s.pilot.Screen.Scale()
	if err != nil {
		return nil, err
	}
	return resultToText(output.NewScreenInfo(size, scale)), nil
}

func (s *Server) handleMouseLocation(_ context.Context, _ map[string]interface{}) (*mcp.CallToolResult, error) {
	cur, err := s.cursor()
	if err != nil {
		return nil, err
	}
	return resultToText(cur), nil
}

func (s *Server) handleMouseMove(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	dest, ok, err := pointParam(params)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("x and y are required")
	}
	if ms := floatParam(params, "duration_ms", 0); ms > 0 {
		err = s.pilot.Mouse.SmoothMove(dest, time.Duration(ms*float64(time.Millisecond)))
	} else {
		err = s.pilot.MoveTo(dest, boolParam(params, "smooth", false))
	}
	if err != nil {
		return nil, err
	}
	return s.ack("move", dest.String())
}

func (s *Server) moveIfGiven(params map[string]interface{}) error {
	p, ok, err := pointParam(params)
	if err != nil || !ok {
		return err
	}
	return s.pilot.Mouse.MoveTo(p)
}

func (s *Server) handleMouseClick(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	button, err := platform.ParseMouseButton(stringParam(params, "button", "left"))
	if err != nil {
		return nil, err
	}
	if err := s.moveIfGiven(params); err != nil {
		return nil, err
	}
	clicks := 1
	if boolParam(params, "double", false) {
		clicks = 2
	}
	for i := 0; i < clicks; i++ {
		if err := s.pilot.Click(button); err != nil {
			return nil, err
		}
	}
	return s.ack("click", fmt.Sprintf("%s x%d", button, clicks))
}

func (s *Server) handleMouseScroll(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	direction, err := platform.ParseScrollDirection(stringParam(params, "direction", ""))
	if err != nil {
		return nil, err
	}
	clicks := intParam(params, "clicks", 3)
	if err := s.moveIfGiven(params); err != nil {
		return nil, err
	}
	if err := s.pilot.Mouse.Scroll(direction, clicks); err != nil {
		return nil, err
	}
	return s.ack("scroll", fmt.Sprintf("%s x%d", direction, clicks))
}

func (s *Server) handlePixelColor(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	p, ok, err := pointParam(params)
	if err != nil {
		return nil, err
	}
	if !ok {
		c, loc, err := s.pilot.ColorAtCursor()
		if err != nil {
			return nil, err
		}
		return resultToText(output.NewColor(loc, c)), nil
	}
	c, err := s.pilot.Screen.GetColor(p)
	if err != nil {
		return nil, err
	}
	return resultToText(output.NewColor(p, c)), nil
}

func (s *Server) handleTypeText(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	text := stringParam(params, "text", "")
	flags, err := key.ParseFlags(stringParam(params, "flags", ""))
	if err != nil {
		return nil, err
	}
	cfg := s.pilot.Config().Keyboard
	wpm := floatParam(params, "wpm", cfg.WPM)
	noise := floatParam(params, "noise", cfg.Noise)
	if err := s.pilot.Keyboard.TypeString(text, flags, wpm, noise); err != nil {
		return nil, err
	}
	return resultToText(output.ActionResult{OK: true, Action: "type", Detail: fmt.Sprintf("%d characters", len([]rune(text)))}), nil
}

func (s *Server) handleKeyTap(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	k, err := key.ParseKey(stringParam(params, "key", ""))
	if err != nil {
		return nil, err
	}
	flags, err := key.ParseFlags(stringParam(params, "flags", ""))
	if err != nil {
		return nil, err
	}
	if err := s.pilot.TapKey(k, flags); err != nil {
		return nil, err
	}
	return resultToText(output.ActionResult{OK: true, Action: "key", Detail: fmt.Sprint(k)}), nil
}

// capture returns the requested region, or the (cached) full screen.
func (s *Server) capture(region *geometry.Rect) (*bitmap.Bitmap, error) {
	if region != nil {
		return s.pilot.Capture(region)
	}
	return s.cache.Frame(func() (*bitmap.Bitmap, error) { return s.pilot.Capture(nil) })
}

func (s *Server) handleScreenshot(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	region, err := rectParam(params)
	if err != nil {
		return nil, err
	}
	format, err := imaging.ParseFormat(stringParam(params, "format", "png"))
	if err != nil {
		return nil, err
	}
	bmp, err := s.capture(region)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Downscale(bmp.Image(), floatParam(params, "scale", 1))
	if err != nil {
		return nil, err
	}
	data, err := imaging.EncodeBytes(img, format, intParam(params, "quality", 80))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	info := output.ScreenshotResult{Width: b.Dx(), Height: b.Dy(), Scale: bmp.Scale()}
	text, _ := yaml.Marshal(info)

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(text)),
			imageContent(data, format.MIMEType()),
		},
	}, nil
}

func loadNeedle(params map[string]interface{}) (*image.RGBA, error) {
	path := stringParam(params, "needle_path", "")
	encoded := stringParam(params, "needle_base64", "")
	switch {
	case path != "" && encoded != "":
		return nil, fmt.Errorf("give needle_path or needle_base64, not both")
	case path != "":
		return imaging.Load(path)
	case encoded != "":
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("needle_base64: %w", err)
		}
		return imaging.Decode(bytes.NewReader(data))
	}
	return nil, fmt.Errorf("needle_path or needle_base64 is required")
}

func (s *Server) handleFindImage(_ context.Context, params map[string]interface{}) (*mcp.CallToolResult, error) {
	region, err := rectParam(params)
	if err != nil {
		return nil, err
	}
	needleImg, err := loadNeedle(params)
	if err != nil {
		return nil, err
	}
	frame, err := s.capture(nil)
	if err != nil {
		return nil, err
	}
	// The needle was cut from a screen of the same density.
	needle := bitmap.New(needleImg, frame.Scale())

	tolerance := floatParam(params, "tolerance", s.pilot.Config().Search.Tolerance)
	opts := bitmap.SearchOptions{Tolerance: tolerance, Rect: region}

	var matches []geometry.Point
	if boolParam(params, "all", false) {
		matches = frame.FindEveryBitmap(needle, opts)
	} else if p, ok := frame.FindBitmap(needle, opts); ok {
		matches = []geometry.Point{p}
	}
	res := output.NewFindResult(matches, len(matches), tolerance)
	text := resultToText(res)
	if !boolParam(params, "annotate", false) {
		return text, nil
	}

	annotated := imaging.AnnotateMatches(frame.Image(), matches, needle.Size(), frame.Scale())
	data, err := imaging.EncodeBytes(annotated, imaging.FormatPNG, 0)
	if err != nil {
		return nil, err
	}
	text.Content = append(text.Content, imageContent(data, imaging.FormatPNG.MIMEType()))
	return text, nil
}
