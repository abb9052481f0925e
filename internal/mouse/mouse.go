// Package mouse moves the cursor and posts button and wheel events.
// Coordinates are logical, with the origin at the top left of the main
// screen.
package mouse

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/screen"
)

// ErrOutOfBounds is returned when a target point is not on the main screen.
var ErrOutOfBounds = errors.New("out of bounds")

// DefaultClickDelay is how long Click holds the button unless told otherwise.
const DefaultClickDelay = 100 * time.Millisecond

// Mouse drives the pointer through a platform.InputBackend.
type Mouse struct {
	input  platform.InputBackend
	screen *screen.Screen
	logger *zap.Logger
	sleep  func(time.Duration)
}

// Option configures a Mouse.
type Option func(*Mouse)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Mouse) { m.logger = logger }
}

// WithSleeper replaces time.Sleep, for tests.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(m *Mouse) { m.sleep = sleep }
}

func New(input platform.InputBackend, scr *screen.Screen, opts ...Option) *Mouse {
	m := &Mouse{
		input:  input,
		screen: scr,
		logger: zap.NewNop(),
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("mouse")
	return m
}

// Location returns the cursor position.
func (m *Mouse) Location() (geometry.Point, error) {
	px, err := m.input.Location()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("mouse location: %w", err)
	}
	scale, err := m.screen.Scale()
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.PointFromPixel(px.X, px.Y, scale), nil
}

// MoveTo warps the cursor to p.
func (m *Mouse) MoveTo(p geometry.Point) error {
	if err := m.checkVisible(p); err != nil {
		return err
	}
	scale, err := m.screen.Scale()
	if err != nil {
		return err
	}
	px := p.Scaled(scale).Round()
	if err := m.input.MoveTo(px); err != nil {
		return fmt.Errorf("mouse move to %s: %w", p, err)
	}
	m.logger.Debug("moved", zap.Stringer("point", p), zap.Stringer("pixel", px))
	return nil
}

// SmoothMove moves the cursor to dest in a straight line, one logical unit
// per step. The steps are spread evenly over duration; a zero duration
// waits 1ms between steps.
func (m *Mouse) SmoothMove(dest geometry.Point, duration time.Duration) error {
	if err := m.checkVisible(dest); err != nil {
		return err
	}
	start, err := m.Location()
	if err != nil {
		return err
	}

	distance := start.Distance(dest)
	steps := int64(math.Ceil(distance))
	interval := time.Millisecond
	if duration > 0 && distance > 0 {
		ms := float64(duration) / float64(time.Millisecond) / distance
		interval = time.Duration(math.Round(ms)) * time.Millisecond
	}
	m.logger.Debug("smooth move",
		zap.Stringer("from", start),
		zap.Stringer("to", dest),
		zap.Int64("steps", steps),
		zap.Duration("interval", interval),
	)

	for step := int64(1); step <= steps; step++ {
		t := float64(step) / float64(steps)
		p := geometry.Point{
			X: (dest.X-start.X)*t + start.X,
			Y: (dest.Y-start.Y)*t + start.Y,
		}
		if err := m.MoveTo(p); err != nil {
			return err
		}
		m.pause(interval)
	}
	return nil
}

// Click presses and releases button at the current location, holding it
// for delay.
func (m *Mouse) Click(button platform.MouseButton, delay time.Duration) error {
	if err := m.Toggle(button, true); err != nil {
		return err
	}
	m.pause(delay)
	return m.Toggle(button, false)
}

// Toggle presses or releases button at the current location.
func (m *Mouse) Toggle(button platform.MouseButton, down bool) error {
	if err := m.input.ButtonToggle(button, down); err != nil {
		return fmt.Errorf("mouse %s toggle: %w", button, err)
	}
	m.logger.Debug("button", zap.Stringer("button", button), zap.Bool("down", down))
	return nil
}

// Scroll turns the wheel clicks notches in direction.
func (m *Mouse) Scroll(direction platform.ScrollDirection, clicks int) error {
	if clicks < 0 {
		return fmt.Errorf("scroll clicks must be non-negative, got %d", clicks)
	}
	if err := m.input.Scroll(direction, clicks); err != nil {
		return fmt.Errorf("mouse scroll %s: %w", direction, err)
	}
	m.logger.Debug("scrolled", zap.Stringer("direction", direction), zap.Int("clicks", clicks))
	return nil
}

func (m *Mouse) checkVisible(p geometry.Point) error {
	ok, err := m.screen.IsPointVisible(p)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("point %s: %w", p, ErrOutOfBounds)
	}
	return nil
}

func (m *Mouse) pause(d time.Duration) {
	if d > 0 {
		m.sleep(d)
	}
}
