//go:build windows

package windows

import (
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Input implements platform.InputBackend with SendInput.
type Input struct {
	sleep func(time.Duration)
}

// NewInput creates a new Windows input backend.
func NewInput() *Input {
	return &Input{sleep: time.Sleep}
}

func (in *Input) MoveTo(p geometry.Point) error {
	if r, _, err := procSetCursorPos.Call(uintptr(int32(p.X)), uintptr(int32(p.Y))); r == 0 {
		return platform.Unavailable("SetCursorPos %s: %v", p, err)
	}
	return nil
}

func (in *Input) Location() (geometry.Point, error) {
	var pt point
	if r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r == 0 {
		return geometry.Point{}, platform.Unavailable("GetCursorPos: %v", err)
	}
	return geometry.Point{X: float64(pt.X), Y: float64(pt.Y)}, nil
}

func (in *Input) ButtonToggle(button platform.MouseButton, down bool) error {
	var flags uint32
	switch button {
	case platform.MouseRight:
		flags = pick(down, mouseEventRightDown, mouseEventRightUp)
	case platform.MouseMiddle:
		flags = pick(down, mouseEventMiddleDown, mouseEventMiddleUp)
	default:
		flags = pick(down, mouseEventLeftDown, mouseEventLeftUp)
	}
	if err := sendMouse(flags, 0); err != nil {
		return platform.Unavailable("toggle %s button: %v", button, err)
	}
	return nil
}

// Scroll sends a single wheel event of WHEEL_DELTA per click.
func (in *Input) Scroll(direction platform.ScrollDirection, clicks int) error {
	if clicks == 0 {
		return nil
	}
	delta := int32(wheelDelta * clicks)
	if direction == platform.ScrollDown {
		delta = -delta
	}
	if err := sendMouse(mouseEventWheel, uint32(delta)); err != nil {
		return platform.Unavailable("scroll %s: %v", direction, err)
	}
	return nil
}

// FlagsForChar returns nil: characters are sent as Unicode input.
func (in *Input) FlagsForChar(rune) []platform.Flag { return nil }

// KeyToggle sends each modifier as a virtual key, waiting ev.ModifierDelay
// after each, then the key itself.
func (in *Input) KeyToggle(ev platform.KeyEvent) error {
	up := pick(!ev.Down, keyEventKeyUp, 0)
	for _, f := range ev.Flags {
		if err := sendKey(flagVKs[f], 0, up); err != nil {
			return platform.Unavailable("send %s: %v", f, err)
		}
		if ev.ModifierDelay > 0 {
			in.sleep(ev.ModifierDelay)
		}
	}
	if ev.IsChar {
		for _, unit := range utf16.Encode([]rune{ev.Char}) {
			if err := sendKey(0, unit, up|keyEventUnicode); err != nil {
				return platform.Unavailable("send %s: %v", ev, err)
			}
		}
		return nil
	}
	if err := sendKey(codeVKs[ev.Code], 0, up); err != nil {
		return platform.Unavailable("send %s: %v", ev, err)
	}
	return nil
}

func pick(cond bool, a, b uint32) uint32 {
	if cond {
		return a
	}
	return b
}
