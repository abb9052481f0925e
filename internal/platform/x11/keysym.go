//go:build linux && cgo

package x11

/*
#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/keysym.h>
*/
import "C"

import (
	"unsafe"

	"github.com/mj1618/desktop-pilot/internal/platform"
)

var flagKeysyms = map[platform.Flag]uint64{
	platform.FlagShift:   C.XK_Shift_L,
	platform.FlagControl: C.XK_Control_L,
	platform.FlagAlt:     C.XK_Alt_L,
	platform.FlagMeta:    C.XK_Meta_L,
	platform.FlagHelp:    C.XK_Help,
}

var codeKeysyms = map[platform.KeyCode]uint64{
	platform.KeyF1: C.XK_F1, platform.KeyF2: C.XK_F2, platform.KeyF3: C.XK_F3,
	platform.KeyF4: C.XK_F4, platform.KeyF5: C.XK_F5, platform.KeyF6: C.XK_F6,
	platform.KeyF7: C.XK_F7, platform.KeyF8: C.XK_F8, platform.KeyF9: C.XK_F9,
	platform.KeyF10: C.XK_F10, platform.KeyF11: C.XK_F11, platform.KeyF12: C.XK_F12,
	platform.KeyF13: C.XK_F13, platform.KeyF14: C.XK_F14, platform.KeyF15: C.XK_F15,
	platform.KeyF16: C.XK_F16, platform.KeyF17: C.XK_F17, platform.KeyF18: C.XK_F18,
	platform.KeyF19: C.XK_F19, platform.KeyF20: C.XK_F20, platform.KeyF21: C.XK_F21,
	platform.KeyF22: C.XK_F22, platform.KeyF23: C.XK_F23, platform.KeyF24: C.XK_F24,
	platform.KeyLeftArrow:  C.XK_Left,
	platform.KeyControl:    C.XK_Control_L,
	platform.KeyRightArrow: C.XK_Right,
	platform.KeyDownArrow:  C.XK_Down,
	platform.KeyEnd:        C.XK_End,
	platform.KeyUpArrow:    C.XK_Up,
	platform.KeyPageUp:     C.XK_Page_Up,
	platform.KeyAlt:        C.XK_Alt_L,
	platform.KeyReturn:     C.XK_Return,
	platform.KeyPageDown:   C.XK_Page_Down,
	platform.KeyDelete:     C.XK_Delete,
	platform.KeyHome:       C.XK_Home,
	platform.KeyEscape:     C.XK_Escape,
	platform.KeyBackspace:  C.XK_BackSpace,
	platform.KeyMeta:       C.XK_Meta_L,
	platform.KeyCapsLock:   C.XK_Caps_Lock,
	platform.KeyShift:      C.XK_Shift_L,
	platform.KeyTab:        C.XK_Tab,
	platform.KeySpace:      C.XK_space,
}

// Characters whose keysym name differs from the character itself.
var charKeysyms = map[rune]uint64{
	' ': C.XK_space, '!': C.XK_exclam, '"': C.XK_quotedbl,
	'#': C.XK_numbersign, '$': C.XK_dollar, '%': C.XK_percent,
	'&': C.XK_ampersand, '\'': C.XK_apostrophe, '(': C.XK_parenleft,
	')': C.XK_parenright, '*': C.XK_asterisk, '+': C.XK_plus,
	',': C.XK_comma, '-': C.XK_minus, '.': C.XK_period,
	'/': C.XK_slash, ':': C.XK_colon, ';': C.XK_semicolon,
	'<': C.XK_less, '=': C.XK_equal, '>': C.XK_greater,
	'?': C.XK_question, '@': C.XK_at, '[': C.XK_bracketleft,
	'\\': C.XK_backslash, ']': C.XK_bracketright, '^': C.XK_asciicircum,
	'_': C.XK_underscore, '`': C.XK_grave, '{': C.XK_braceleft,
	'|': C.XK_bar, '}': C.XK_braceright, '~': C.XK_asciitilde,
	'\n': C.XK_Return, '\r': C.XK_Return, '\t': C.XK_Tab,
}

// charKeysym maps a character to a keysym: the punctuation table first,
// then the keysym named by the character, then the Unicode keysym range.
func charKeysym(c rune) uint64 {
	if sym, ok := charKeysyms[c]; ok {
		return sym
	}
	cs := C.CString(string(c))
	defer C.free(unsafe.Pointer(cs))
	if sym := uint64(C.XStringToKeysym(cs)); sym != C.NoSymbol {
		return sym
	}
	return unicodeKeysym(c)
}

func unicodeKeysym(c rune) uint64 {
	switch {
	case c >= 0x20 && c <= 0xff:
		return uint64(c)
	case c > 0xff && c <= 0x10ffff:
		return 0x01000000 | uint64(c)
	}
	return 0
}
