// Package simulated is an in-memory platform backend: a framebuffer stands in
// for the display and every input event is recorded instead of posted. It is
// selected with backend.kind=simulated for headless runs and drives the tests
// of the packages built on top of the platform contracts.
package simulated

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"sync"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// EventKind identifies a recorded event.
type EventKind int

const (
	EventKey EventKind = iota
	EventButton
	EventMove
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventKey:
		return "key"
	case EventButton:
		return "button"
	case EventMove:
		return "move"
	case EventScroll:
		return "scroll"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one recorded input call. Only the fields of its Kind are set.
type Event struct {
	Kind      EventKind
	Key       platform.KeyEvent
	Button    platform.MouseButton
	Down      bool
	Point     geometry.Point
	Direction platform.ScrollDirection
	Clicks    int
}

// Backend implements platform.InputBackend and platform.DisplayBackend.
type Backend struct {
	mu        sync.Mutex
	frame     *image.RGBA
	scale     float64
	cursor    geometry.Point
	events    []Event
	shiftKeys bool
	err       error
}

// Option configures a Backend.
type Option func(*Backend)

// WithShiftInference makes FlagsForChar behave like the X11 backend:
// uppercase letters and shifted punctuation imply Shift.
func WithShiftInference() Option {
	return func(b *Backend) { b.shiftKeys = true }
}

// WithFrame seeds the framebuffer from img. The backend size follows img.
func WithFrame(img image.Image) Option {
	return func(b *Backend) { b.setFrame(img) }
}

// New returns a backend with a width x height pixel framebuffer filled
// with opaque black.
func New(width, height int, scale float64, opts ...Option) *Backend {
	b := &Backend{scale: scale}
	b.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(b.frame, b.frame.Bounds(), image.NewUniform(color.RGBA{A: 0xff}), image.Point{}, draw.Src)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Provider wraps b as both backends of a platform.Provider.
func (b *Backend) Provider() *platform.Provider {
	return &platform.Provider{Input: b, Display: b}
}

// SetFrame replaces the framebuffer with a copy of img.
func (b *Backend) SetFrame(img image.Image) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setFrame(img)
}

func (b *Backend) setFrame(img image.Image) {
	r := img.Bounds()
	frame := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(frame, frame.Bounds(), img, r.Min, draw.Src)
	b.frame = frame
}

// Frame returns a copy of the framebuffer.
func (b *Backend) Frame() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := image.NewRGBA(b.frame.Bounds())
	copy(out.Pix, b.frame.Pix)
	return out
}

// SetPixel sets one framebuffer pixel.
func (b *Backend) SetPixel(x, y int, c color.RGBA) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frame.SetRGBA(x, y, c)
}

// SetCursor places the cursor at p, in pixels, without recording an event.
func (b *Backend) SetCursor(p geometry.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = p
}

// SetError makes every subsequent call fail with err until cleared with nil.
func (b *Backend) SetError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

// Events returns a copy of the recorded events.
func (b *Backend) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.events)
}

// Reset drops the recorded events.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

func (b *Backend) record(ev Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if ev.Kind == EventMove {
		b.cursor = ev.Point
	}
	if ev.Kind == EventKey {
		ev.Key.Flags = slices.Clone(ev.Key.Flags)
	}
	b.events = append(b.events, ev)
	return nil
}

func (b *Backend) KeyToggle(ev platform.KeyEvent) error {
	return b.record(Event{Kind: EventKey, Key: ev, Down: ev.Down})
}

func (b *Backend) ButtonToggle(button platform.MouseButton, down bool) error {
	return b.record(Event{Kind: EventButton, Button: button, Down: down})
}

func (b *Backend) MoveTo(p geometry.Point) error {
	return b.record(Event{Kind: EventMove, Point: p})
}

func (b *Backend) Scroll(direction platform.ScrollDirection, clicks int) error {
	return b.record(Event{Kind: EventScroll, Direction: direction, Clicks: clicks})
}

func (b *Backend) Location() (geometry.Point, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return geometry.Point{}, b.err
	}
	return b.cursor, nil
}

func (b *Backend) FlagsForChar(c rune) []platform.Flag {
	if !b.shiftKeys {
		return nil
	}
	return platform.ShiftFlagsForChar(c)
}

func (b *Backend) Size() (geometry.Size, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return geometry.Size{}, b.err
	}
	r := b.frame.Bounds()
	return geometry.Size{Width: float64(r.Dx()), Height: float64(r.Dy())}.Scaled(1 / b.scale), nil
}

func (b *Backend) Scale() (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return 0, b.err
	}
	return b.scale, nil
}

func (b *Backend) Capture(pixelRect geometry.Rect) (*image.RGBA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	pr := pixelRect.Round()
	src := image.Rect(
		int(pr.Origin.X), int(pr.Origin.Y),
		int(pr.MaxX()), int(pr.MaxY()),
	)
	if !src.In(b.frame.Bounds()) {
		return nil, fmt.Errorf("capture %v outside framebuffer %v", src, b.frame.Bounds())
	}
	out := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(out, out.Bounds(), b.frame, src.Min, draw.Src)
	return out, nil
}
