package platform

import (
	"fmt"
	"strings"
	"time"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return fmt.Sprintf("MouseButton(%d)", int(b))
	}
}

// ParseMouseButton converts a string flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// ScrollDirection is the direction of a wheel scroll.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

func (d ScrollDirection) String() string {
	if d == ScrollDown {
		return "down"
	}
	return "up"
}

// ParseScrollDirection converts a string flag value to ScrollDirection.
func ParseScrollDirection(s string) (ScrollDirection, error) {
	switch strings.ToLower(s) {
	case "up":
		return ScrollUp, nil
	case "down":
		return ScrollDown, nil
	default:
		return ScrollUp, fmt.Errorf("unknown scroll direction: %q (expected up or down)", s)
	}
}

// Flag is a device-independent modifier.
type Flag int

const (
	FlagShift Flag = iota
	FlagControl
	FlagAlt
	FlagMeta
	// FlagHelp is a special key identifier rather than a held modifier.
	FlagHelp
)

var flagNames = map[Flag]string{
	FlagShift:   "shift",
	FlagControl: "control",
	FlagAlt:     "alt",
	FlagMeta:    "meta",
	FlagHelp:    "help",
}

var flagAliases = map[string]Flag{
	"shift":   FlagShift,
	"control": FlagControl,
	"ctrl":    FlagControl,
	"alt":     FlagAlt,
	"option":  FlagAlt,
	"meta":    FlagMeta,
	"cmd":     FlagMeta,
	"command": FlagMeta,
	"super":   FlagMeta,
	"win":     FlagMeta,
	"help":    FlagHelp,
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

// ParseFlag converts a modifier name to a Flag. Matching is case-insensitive
// and accepts common aliases (ctrl, cmd, option).
func ParseFlag(s string) (Flag, error) {
	if f, ok := flagAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return FlagShift, fmt.Errorf("unknown modifier: %q (expected shift, control, alt, meta, or help)", s)
}

// KeyCode is a device-independent key.
type KeyCode int

const (
	KeyF1 KeyCode = iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24
	KeyLeftArrow
	KeyControl
	KeyRightArrow
	KeyDownArrow
	KeyEnd
	KeyUpArrow
	KeyPageUp
	KeyAlt
	KeyReturn
	KeyPageDown
	KeyDelete
	KeyHome
	KeyEscape
	KeyBackspace
	KeyMeta
	KeyCapsLock
	KeyShift
	KeyTab
	KeySpace
)

var keyCodeNames = [...]string{
	KeyLeftArrow:  "left",
	KeyControl:    "control",
	KeyRightArrow: "right",
	KeyDownArrow:  "down",
	KeyEnd:        "end",
	KeyUpArrow:    "up",
	KeyPageUp:     "pageup",
	KeyAlt:        "alt",
	KeyReturn:     "return",
	KeyPageDown:   "pagedown",
	KeyDelete:     "delete",
	KeyHome:       "home",
	KeyEscape:     "escape",
	KeyBackspace:  "backspace",
	KeyMeta:       "meta",
	KeyCapsLock:   "capslock",
	KeyShift:      "shift",
	KeyTab:        "tab",
	KeySpace:      "space",
}

func (k KeyCode) String() string {
	switch {
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("f%d", int(k-KeyF1)+1)
	case k > KeyF24 && k <= KeySpace:
		return keyCodeNames[k]
	default:
		return fmt.Sprintf("KeyCode(%d)", int(k))
	}
}

// KeyEvent is one key press or release handed to an InputBackend.
// Exactly one of Char (when IsChar) or Code identifies the key.
type KeyEvent struct {
	Code   KeyCode
	Char   rune
	IsChar bool
	Down   bool
	// Flags is the merged modifier set, caller flags first.
	Flags []Flag
	// ModifierDelay is slept after each modifier event on backends that
	// post modifiers as separate key events.
	ModifierDelay time.Duration
}

func (e KeyEvent) String() string {
	dir := "up"
	if e.Down {
		dir = "down"
	}
	if e.IsChar {
		return fmt.Sprintf("char %q %s %v", e.Char, dir, e.Flags)
	}
	return fmt.Sprintf("key %s %s %v", e.Code, dir, e.Flags)
}
