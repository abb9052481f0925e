package key

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mj1618/desktop-pilot/internal/platform"
)

var namedKeys = map[string]platform.KeyCode{
	"left":       platform.KeyLeftArrow,
	"leftarrow":  platform.KeyLeftArrow,
	"right":      platform.KeyRightArrow,
	"rightarrow": platform.KeyRightArrow,
	"up":         platform.KeyUpArrow,
	"uparrow":    platform.KeyUpArrow,
	"down":       platform.KeyDownArrow,
	"downarrow":  platform.KeyDownArrow,
	"control":    platform.KeyControl,
	"ctrl":       platform.KeyControl,
	"alt":        platform.KeyAlt,
	"option":     platform.KeyAlt,
	"meta":       platform.KeyMeta,
	"cmd":        platform.KeyMeta,
	"command":    platform.KeyMeta,
	"super":      platform.KeyMeta,
	"win":        platform.KeyMeta,
	"shift":      platform.KeyShift,
	"end":        platform.KeyEnd,
	"home":       platform.KeyHome,
	"pageup":     platform.KeyPageUp,
	"pgup":       platform.KeyPageUp,
	"pagedown":   platform.KeyPageDown,
	"pgdn":       platform.KeyPageDown,
	"return":     platform.KeyReturn,
	"enter":      platform.KeyReturn,
	"delete":     platform.KeyDelete,
	"del":        platform.KeyDelete,
	"escape":     platform.KeyEscape,
	"esc":        platform.KeyEscape,
	"backspace":  platform.KeyBackspace,
	"capslock":   platform.KeyCapsLock,
	"tab":        platform.KeyTab,
	"space":      platform.KeySpace,
}

// ParseKey converts a key name to a Key. A single character is a Character;
// anything longer is looked up case-insensitively as a key name ("enter",
// "esc", "pageup", "f5").
func ParseKey(s string) (Key, error) {
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Character(r), nil
	}
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.NewReplacer("_", "", "-", "", " ", "").Replace(name)
	if code, ok := namedKeys[name]; ok {
		return Code(code), nil
	}
	if n, ok := strings.CutPrefix(name, "f"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= 24 {
			return Code(platform.KeyF1 + platform.KeyCode(i-1)), nil
		}
	}
	return nil, fmt.Errorf("unknown key: %q", s)
}

// ParseFlags parses a comma-separated modifier list such as "shift,ctrl".
// An empty string yields no flags.
func ParseFlags(s string) ([]platform.Flag, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var flags []platform.Flag
	for _, part := range strings.Split(s, ",") {
		f, err := platform.ParseFlag(part)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	return flags, nil
}
