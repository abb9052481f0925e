package server

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("screen_info",
			mcp.WithDescription("Report the main screen size in points, its scale factor and its size in pixels"),
		),
		s.tool("screen_info", false, s.handleScreenInfo),
	)

	s.mcp.AddTool(
		mcp.NewTool("mouse_location",
			mcp.WithDescription("Report the mouse cursor location in points"),
		),
		s.tool("mouse_location", false, s.handleMouseLocation),
	)

	s.mcp.AddTool(
		mcp.NewTool("mouse_move",
			mcp.WithDescription("Move the mouse cursor to a point, instantly or gliding along a straight line"),
			mcp.WithNumber("x", mcp.Description("Target X in points"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Target Y in points"), mcp.Required()),
			mcp.WithBoolean("smooth", mcp.Description("Glide to the target instead of warping")),
			mcp.WithNumber("duration_ms", mcp.Description("Glide duration in ms (implies smooth)")),
		),
		s.tool("mouse_move", true, s.handleMouseMove),
	)

	s.mcp.AddTool(
		mcp.NewTool("mouse_click",
			mcp.WithDescription("Click a mouse button at the current location, or at x/y after moving there"),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle (default: left)")),
			mcp.WithNumber("x", mcp.Description("Click at X coordinate")),
			mcp.WithNumber("y", mcp.Description("Click at Y coordinate")),
			mcp.WithBoolean("double", mcp.Description("Double-click")),
		),
		s.tool("mouse_click", true, s.handleMouseClick),
	)

	s.mcp.AddTool(
		mcp.NewTool("mouse_scroll",
			mcp.WithDescription("Scroll the mouse wheel"),
			mcp.WithString("direction", mcp.Description("Scroll direction: up, down"), mcp.Required()),
			mcp.WithNumber("clicks", mcp.Description("Scroll clicks (default: 3)")),
			mcp.WithNumber("x", mcp.Description("Scroll at X coordinate")),
			mcp.WithNumber("y", mcp.Description("Scroll at Y coordinate")),
		),
		s.tool("mouse_scroll", true, s.handleMouseScroll),
	)

	s.mcp.AddTool(
		mcp.NewTool("pixel_color",
			mcp.WithDescription("Read the color of a screen pixel; without x/y, the pixel under the mouse cursor"),
			mcp.WithNumber("x", mcp.Description("X in points")),
			mcp.WithNumber("y", mcp.Description("Y in points")),
		),
		s.tool("pixel_color", false, s.handlePixelColor),
	)

	s.mcp.AddTool(
		mcp.NewTool("type_text",
			mcp.WithDescription("Type a string, one character tap at a time, at a words-per-minute pace"),
			mcp.WithString("text", mcp.Description("Text to type"), mcp.Required()),
			mcp.WithString("flags", mcp.Description("Modifiers held for every character, e.g. 'shift' or 'control,alt'")),
			mcp.WithNumber("wpm", mcp.Description("Words per minute (0 = as fast as possible)")),
			mcp.WithNumber("noise", mcp.Description("Random extra delay as a fraction of the per-character time")),
		),
		s.tool("type_text", true, s.handleTypeText),
	)

	s.mcp.AddTool(
		mcp.NewTool("key_tap",
			mcp.WithDescription("Press and release a key with optional modifiers"),
			mcp.WithString("key", mcp.Description("Key name (enter, tab, esc, f1, left, ...) or a single character"), mcp.Required()),
			mcp.WithString("flags", mcp.Description("Modifiers, e.g. 'meta' or 'control,shift'")),
		),
		s.tool("key_tap", true, s.handleKeyTap),
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the screen or a region of it"),
			mcp.WithNumber("x", mcp.Description("Region X in points")),
			mcp.WithNumber("y", mcp.Description("Region Y in points")),
			mcp.WithNumber("width", mcp.Description("Region width in points")),
			mcp.WithNumber("height", mcp.Description("Region height in points")),
			mcp.WithString("format", mcp.Description("Image format: png, jpg (default: png)")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100 (default: 80)")),
			mcp.WithNumber("scale", mcp.Description("Downscale factor 0.1-1.0 (default: 1)")),
		),
		s.tool("screenshot", false, s.handleScreenshot),
	)

	s.mcp.AddTool(
		mcp.NewTool("find_image",
			mcp.WithDescription("Search the screen for a needle image and report where it appears, in points"),
			mcp.WithString("needle_path", mcp.Description("Path to a PNG or JPEG needle image")),
			mcp.WithString("needle_base64", mcp.Description("Base64-encoded PNG or JPEG needle image")),
			mcp.WithNumber("tolerance", mcp.Description("Color tolerance 0-1 (default: configured search tolerance)")),
			mcp.WithBoolean("all", mcp.Description("Return every match instead of the first")),
			mcp.WithNumber("x", mcp.Description("Search region X in points")),
			mcp.WithNumber("y", mcp.Description("Search region Y in points")),
			mcp.WithNumber("width", mcp.Description("Search region width in points")),
			mcp.WithNumber("height", mcp.Description("Search region height in points")),
			mcp.WithBoolean("annotate", mcp.Description("Also return the screen with match boxes drawn")),
		),
		s.tool("find_image", false, s.handleFindImage),
	)
}
