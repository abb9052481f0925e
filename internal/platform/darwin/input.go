//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation -framework Carbon
#include <CoreGraphics/CoreGraphics.h>
#include <Carbon/Carbon.h>

static CGPoint cg_location(void) {
    CGEventRef ev = CGEventCreate(NULL);
    if (!ev) return CGPointMake(-1, -1);
    CGPoint p = CGEventGetLocation(ev);
    CFRelease(ev);
    return p;
}

static int cg_move_mouse(double x, double y) {
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, CGPointMake(x, y), kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

// button: 0=left, 1=right, 2=middle
static int cg_button(int button, int down) {
    CGEventType type;
    CGMouseButton cgButton;
    switch (button) {
        case 1:
            cgButton = kCGMouseButtonRight;
            type = down ? kCGEventRightMouseDown : kCGEventRightMouseUp;
            break;
        case 2:
            cgButton = kCGMouseButtonCenter;
            type = down ? kCGEventOtherMouseDown : kCGEventOtherMouseUp;
            break;
        default:
            cgButton = kCGMouseButtonLeft;
            type = down ? kCGEventLeftMouseDown : kCGEventLeftMouseUp;
            break;
    }
    CGEventRef pos = CGEventCreate(NULL);
    if (!pos) return -1;
    CGPoint point = CGEventGetLocation(pos);
    CFRelease(pos);

    CGEventRef ev = CGEventCreateMouseEvent(NULL, type, point, cgButton);
    if (!ev) return -1;
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_scroll_line(int lines) {
    CGEventRef scroll = CGEventCreateScrollWheelEvent(NULL, kCGScrollEventUnitLine, 1, lines);
    if (!scroll) return -1;
    CGEventPost(kCGHIDEventTap, scroll);
    CFRelease(scroll);
    return 0;
}

// Posts a key event carrying a Unicode string instead of a key code.
static int cg_unicode_key(UniChar *chars, int n, int down, CGEventFlags flags, int setFlags) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, 0, down);
    if (!ev) return -1;
    CGEventKeyboardSetUnicodeString(ev, n, chars);
    if (setFlags) CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}

static int cg_key_code(CGKeyCode code, int down, CGEventFlags flags) {
    CGEventRef ev = CGEventCreateKeyboardEvent(NULL, code, down);
    if (!ev) return -1;
    CGEventSetType(ev, down ? kCGEventKeyDown : kCGEventKeyUp);
    CGEventSetFlags(ev, flags);
    CGEventPost(kCGHIDEventTap, ev);
    CFRelease(ev);
    return 0;
}
*/
import "C"

import (
	"unicode"
	"unicode/utf16"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Input implements platform.InputBackend with CoreGraphics events.
// CoreGraphics works in points; the pixel coordinates of the interface are
// converted with the display scale.
type Input struct {
	display *Display
}

// NewInput creates a new macOS input backend.
func NewInput(display *Display) *Input {
	return &Input{display: display}
}

func (in *Input) MoveTo(p geometry.Point) error {
	scale, err := in.display.Scale()
	if err != nil {
		return err
	}
	pt := p.Scaled(1 / scale)
	if C.cg_move_mouse(C.double(pt.X), C.double(pt.Y)) != 0 {
		return platform.Unavailable("failed to move mouse to %s", p)
	}
	return nil
}

func (in *Input) Location() (geometry.Point, error) {
	scale, err := in.display.Scale()
	if err != nil {
		return geometry.Point{}, err
	}
	loc := C.cg_location()
	return geometry.Point{X: float64(loc.x), Y: float64(loc.y)}.Scaled(scale), nil
}

func (in *Input) ButtonToggle(button platform.MouseButton, down bool) error {
	cButton := C.int(0)
	switch button {
	case platform.MouseRight:
		cButton = 1
	case platform.MouseMiddle:
		cButton = 2
	}
	if C.cg_button(cButton, cBool(down)) != 0 {
		return platform.Unavailable("failed to toggle %s button", button)
	}
	return nil
}

// Scroll posts one ten-line wheel event per click.
func (in *Input) Scroll(direction platform.ScrollDirection, clicks int) error {
	lines := C.int(10)
	if direction == platform.ScrollDown {
		lines = -10
	}
	for i := 0; i < clicks; i++ {
		if C.cg_scroll_line(lines) != 0 {
			return platform.Unavailable("failed to scroll %s", direction)
		}
	}
	return nil
}

// FlagsForChar returns nil: Unicode key events carry the character itself.
func (in *Input) FlagsForChar(rune) []platform.Flag { return nil }

func (in *Input) KeyToggle(ev platform.KeyEvent) error {
	mask := flagMask(ev.Flags)
	if ev.IsChar {
		if len(ev.Flags) > 0 {
			if code, ok := charKeyCodes[unicode.ToLower(ev.Char)]; ok {
				return postKeyCode(code, ev, mask)
			}
		}
		units := utf16.Encode([]rune{ev.Char})
		chars := make([]C.UniChar, len(units))
		for i, u := range units {
			chars[i] = C.UniChar(u)
		}
		setFlags := C.int(0)
		if len(ev.Flags) > 0 {
			setFlags = 1
		}
		if C.cg_unicode_key(&chars[0], C.int(len(chars)), cBool(ev.Down), mask, setFlags) != 0 {
			return platform.Unavailable("failed to post %s", ev)
		}
		return nil
	}

	code, ok := keyCodes[ev.Code]
	if !ok {
		// No macOS key for this code (F21-F24).
		return nil
	}
	return postKeyCode(code, ev, mask)
}

func postKeyCode(code C.CGKeyCode, ev platform.KeyEvent, mask C.CGEventFlags) error {
	if C.cg_key_code(code, cBool(ev.Down), mask) != 0 {
		return platform.Unavailable("failed to post %s", ev)
	}
	return nil
}

func flagMask(flags []platform.Flag) C.CGEventFlags {
	var mask C.CGEventFlags
	for _, f := range flags {
		switch f {
		case platform.FlagShift:
			mask |= C.kCGEventFlagMaskShift
		case platform.FlagControl:
			mask |= C.kCGEventFlagMaskControl
		case platform.FlagAlt:
			mask |= C.kCGEventFlagMaskAlternate
		case platform.FlagMeta:
			mask |= C.kCGEventFlagMaskCommand
		case platform.FlagHelp:
			mask |= C.kCGEventFlagMaskHelp
		}
	}
	return mask
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}

// macOS virtual key codes from Carbon Events.h.
var keyCodes = map[platform.KeyCode]C.CGKeyCode{
	platform.KeyF1: C.kVK_F1, platform.KeyF2: C.kVK_F2, platform.KeyF3: C.kVK_F3,
	platform.KeyF4: C.kVK_F4, platform.KeyF5: C.kVK_F5, platform.KeyF6: C.kVK_F6,
	platform.KeyF7: C.kVK_F7, platform.KeyF8: C.kVK_F8, platform.KeyF9: C.kVK_F9,
	platform.KeyF10: C.kVK_F10, platform.KeyF11: C.kVK_F11, platform.KeyF12: C.kVK_F12,
	platform.KeyF13: C.kVK_F13, platform.KeyF14: C.kVK_F14, platform.KeyF15: C.kVK_F15,
	platform.KeyF16: C.kVK_F16, platform.KeyF17: C.kVK_F17, platform.KeyF18: C.kVK_F18,
	platform.KeyF19: C.kVK_F19, platform.KeyF20: C.kVK_F20,
	platform.KeyLeftArrow:  C.kVK_LeftArrow,
	platform.KeyControl:    C.kVK_Control,
	platform.KeyRightArrow: C.kVK_RightArrow,
	platform.KeyDownArrow:  C.kVK_DownArrow,
	platform.KeyEnd:        C.kVK_End,
	platform.KeyUpArrow:    C.kVK_UpArrow,
	platform.KeyPageUp:     C.kVK_PageUp,
	platform.KeyAlt:        C.kVK_Option,
	platform.KeyReturn:     C.kVK_Return,
	platform.KeyPageDown:   C.kVK_PageDown,
	platform.KeyDelete:     C.kVK_ForwardDelete,
	platform.KeyHome:       C.kVK_Home,
	platform.KeyEscape:     C.kVK_Escape,
	platform.KeyBackspace:  C.kVK_Delete,
	platform.KeyMeta:       C.kVK_Command,
	platform.KeyCapsLock:   C.kVK_CapsLock,
	platform.KeyShift:      C.kVK_Shift,
	platform.KeyTab:        C.kVK_Tab,
	platform.KeySpace:      C.kVK_Space,
}

// ANSI-layout key codes used when a character is combined with modifiers,
// so that shortcuts like cmd+c reach applications as key presses.
var charKeyCodes = map[rune]C.CGKeyCode{
	'a': 0x00, 'b': 0x0B, 'c': 0x08, 'd': 0x02, 'e': 0x0E, 'f': 0x03,
	'g': 0x05, 'h': 0x04, 'i': 0x22, 'j': 0x26, 'k': 0x28, 'l': 0x25,
	'm': 0x2E, 'n': 0x2D, 'o': 0x1F, 'p': 0x23, 'q': 0x0C, 'r': 0x0F,
	's': 0x01, 't': 0x11, 'u': 0x20, 'v': 0x09, 'w': 0x0D, 'x': 0x07,
	'y': 0x10, 'z': 0x06,
	'0': 0x1D, '1': 0x12, '2': 0x13, '3': 0x14, '4': 0x15,
	'5': 0x17, '6': 0x16, '7': 0x1A, '8': 0x1C, '9': 0x19,
	' ': 0x31, '\t': 0x30, '\n': 0x24, '\r': 0x24,
	'-': 0x1B, '=': 0x18, '[': 0x21, ']': 0x1E, '\\': 0x2A,
	';': 0x29, '\'': 0x27, ',': 0x2B, '.': 0x2F, '/': 0x2C, '`': 0x32,
}
