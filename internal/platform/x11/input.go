//go:build linux && cgo

package x11

/*
#include <X11/Xlib.h>
#include <X11/extensions/XTest.h>

static void x_query_pointer(Display *d, int *x, int *y) {
    Window root, child;
    int wx, wy;
    unsigned int mask;
    XQueryPointer(d, DefaultRootWindow(d), &root, &child, x, y, &wx, &wy, &mask);
}

static void x_warp_pointer(Display *d, int x, int y) {
    XWarpPointer(d, None, DefaultRootWindow(d), 0, 0, 0, 0, x, y);
    XFlush(d);
}

static void x_button(Display *d, unsigned int button, int down) {
    XTestFakeButtonEvent(d, button, down, CurrentTime);
    XFlush(d);
}

// Returns 0 when the keysym has no keycode in the current keymap.
static int x_key(Display *d, KeySym sym, int down) {
    KeyCode code = XKeysymToKeycode(d, sym);
    if (code == 0) return 0;
    XTestFakeKeyEvent(d, code, down, CurrentTime);
    XFlush(d);
    return 1;
}
*/
import "C"

import (
	"time"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

const (
	buttonLeft       = 1
	buttonMiddle     = 2
	buttonRight      = 3
	buttonScrollUp   = 4
	buttonScrollDown = 5
)

// Input implements platform.InputBackend with XTest fake events.
type Input struct {
	sleep func(time.Duration)
}

// NewInput creates a new X11 input backend.
func NewInput() *Input {
	return &Input{sleep: time.Sleep}
}

func (in *Input) MoveTo(p geometry.Point) error {
	return withDisplay(func(d *C.Display) error {
		C.x_warp_pointer(d, C.int(p.X), C.int(p.Y))
		return nil
	})
}

func (in *Input) Location() (geometry.Point, error) {
	var x, y C.int
	err := withDisplay(func(d *C.Display) error {
		C.x_query_pointer(d, &x, &y)
		return nil
	})
	return geometry.Point{X: float64(x), Y: float64(y)}, err
}

func (in *Input) ButtonToggle(button platform.MouseButton, down bool) error {
	b := buttonLeft
	switch button {
	case platform.MouseMiddle:
		b = buttonMiddle
	case platform.MouseRight:
		b = buttonRight
	}
	return withDisplay(func(d *C.Display) error {
		C.x_button(d, C.uint(b), cBool(down))
		return nil
	})
}

// Scroll presses and releases the wheel button once per click.
func (in *Input) Scroll(direction platform.ScrollDirection, clicks int) error {
	b := C.uint(buttonScrollUp)
	if direction == platform.ScrollDown {
		b = buttonScrollDown
	}
	return withDisplay(func(d *C.Display) error {
		for i := 0; i < clicks; i++ {
			C.x_button(d, b, 1)
			C.x_button(d, b, 0)
		}
		return nil
	})
}

// FlagsForChar reports shift for characters that need it on a US layout,
// since XTest sends raw key codes.
func (in *Input) FlagsForChar(c rune) []platform.Flag {
	return platform.ShiftFlagsForChar(c)
}

// KeyToggle sends each modifier, waiting ev.ModifierDelay after each, then
// the key itself. Keys missing from the keymap are skipped.
func (in *Input) KeyToggle(ev platform.KeyEvent) error {
	var sym C.KeySym
	if ev.IsChar {
		sym = C.KeySym(charKeysym(ev.Char))
	} else {
		sym = C.KeySym(codeKeysyms[ev.Code])
	}
	for _, f := range ev.Flags {
		fsym := C.KeySym(flagKeysyms[f])
		if err := withDisplay(func(d *C.Display) error {
			C.x_key(d, fsym, cBool(ev.Down))
			return nil
		}); err != nil {
			return err
		}
		if ev.ModifierDelay > 0 {
			in.sleep(ev.ModifierDelay)
		}
	}
	if sym == 0 {
		return nil
	}
	return withDisplay(func(d *C.Display) error {
		C.x_key(d, sym, cBool(ev.Down))
		return nil
	})
}

func cBool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
