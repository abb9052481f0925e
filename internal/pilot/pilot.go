// Package pilot wires a platform provider and the configuration into the
// screen, mouse and keyboard controllers.
package pilot

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/key"
	"github.com/mj1618/desktop-pilot/internal/mouse"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/simulated"
	"github.com/mj1618/desktop-pilot/internal/screen"
)

// Pilot is the automation surface used by the CLI and the MCP server.
type Pilot struct {
	Screen   *screen.Screen
	Mouse    *mouse.Mouse
	Keyboard *key.Keyboard

	cfg    *config.Config
	logger *zap.Logger
}

// Options carries test hooks through to the controllers.
type Options struct {
	MouseOptions    []mouse.Option
	KeyboardOptions []key.Option
}

// New builds a Pilot on provider.
func New(provider *platform.Provider, cfg *config.Config, logger *zap.Logger, opts Options) *Pilot {
	if logger == nil {
		logger = zap.NewNop()
	}
	scr := screen.New(provider.Display, logger)
	mouseOpts := append([]mouse.Option{mouse.WithLogger(logger)}, opts.MouseOptions...)
	keyOpts := append([]key.Option{key.WithLogger(logger)}, opts.KeyboardOptions...)
	return &Pilot{
		Screen:   scr,
		Mouse:    mouse.New(provider.Input, scr, mouseOpts...),
		Keyboard: key.New(provider.Input, keyOpts...),
		cfg:      cfg,
		logger:   logger.Named("pilot"),
	}
}

// NewFromConfig picks the backend named by cfg.Backend.Kind. The native
// backend must have been registered by importing internal/platform/all.
func NewFromConfig(cfg *config.Config, logger *zap.Logger) (*Pilot, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	return New(provider, cfg, logger, Options{}), nil
}

// NewProvider returns the provider cfg asks for.
func NewProvider(cfg *config.Config) (*platform.Provider, error) {
	switch cfg.Backend.Kind {
	case config.BackendSimulated:
		s := cfg.Backend.Simulated
		return simulated.New(s.Width, s.Height, s.Scale).Provider(), nil
	case config.BackendNative, "":
		provider, err := platform.NewProvider()
		if err != nil {
			return nil, err
		}
		if platform.RequestPermissionsFunc != nil {
			platform.RequestPermissionsFunc()
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown backend kind %q", cfg.Backend.Kind)
	}
}

// Config returns the configuration the pilot was built with.
func (p *Pilot) Config() *config.Config { return p.cfg }

// Capture grabs rect, or the whole screen when rect is nil.
func (p *Pilot) Capture(rect *geometry.Rect) (*bitmap.Bitmap, error) {
	if rect == nil {
		return bitmap.Capture(p.Screen)
	}
	return bitmap.CapturePortion(p.Screen, *rect)
}

// ColorAtCursor returns the color of the pixel under the mouse cursor.
func (p *Pilot) ColorAtCursor() (color.RGBA, geometry.Point, error) {
	loc, err := p.Mouse.Location()
	if err != nil {
		return color.RGBA{}, geometry.Point{}, err
	}
	c, err := p.Screen.GetColor(loc)
	if err != nil {
		return color.RGBA{}, loc, fmt.Errorf("color at cursor %s: %w", loc, err)
	}
	return c, loc, nil
}

// Click clicks button with the configured hold time.
func (p *Pilot) Click(button platform.MouseButton) error {
	return p.Mouse.Click(button, p.cfg.Mouse.ClickDelay)
}

// MoveTo warps the cursor, or glides it when smooth is set, using the
// configured smooth-move duration.
func (p *Pilot) MoveTo(dest geometry.Point, smooth bool) error {
	if smooth {
		return p.Mouse.SmoothMove(dest, p.cfg.Mouse.SmoothDuration)
	}
	return p.Mouse.MoveTo(dest)
}

// TapKey taps k with the configured hold and modifier delays.
func (p *Pilot) TapKey(k key.Key, flags []platform.Flag) error {
	return p.Keyboard.Tap(k, flags, p.cfg.Keyboard.KeyDelay, p.cfg.Keyboard.ModifierDelay)
}

// Type types text at the configured pace.
func (p *Pilot) Type(text string, flags []platform.Flag) error {
	return p.Keyboard.TypeString(text, flags, p.cfg.Keyboard.WPM, p.cfg.Keyboard.Noise)
}

// Drag presses the left button at from, glides to to and releases the
// button. The button is released even when the glide fails.
func (p *Pilot) Drag(from, to geometry.Point) error {
	if err := p.Mouse.MoveTo(from); err != nil {
		return err
	}
	if err := p.Mouse.Toggle(platform.MouseLeft, true); err != nil {
		return err
	}
	moveErr := p.Mouse.SmoothMove(to, p.cfg.Mouse.SmoothDuration)
	if err := p.Mouse.Toggle(platform.MouseLeft, false); err != nil && moveErr == nil {
		return err
	}
	return moveErr
}

// WaitFor captures the screen every interval until cond reports true. It
// returns ctx.Err() when ctx ends first.
func (p *Pilot) WaitFor(ctx context.Context, interval time.Duration, cond func(*bitmap.Bitmap) bool) error {
	if interval <= 0 {
		return fmt.Errorf("wait interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for polls := 1; ; polls++ {
		frame, err := p.Capture(nil)
		if err != nil {
			return err
		}
		if cond(frame) {
			p.logger.Debug("wait satisfied", zap.Int("polls", polls))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
