//go:build windows

package windows

import "github.com/mj1618/desktop-pilot/internal/platform"

// Virtual-key codes from WinUser.h.
const (
	vkBack    = 0x08
	vkTab     = 0x09
	vkReturn  = 0x0D
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkCapital = 0x14
	vkEscape  = 0x1B
	vkSpace   = 0x20
	vkPrior   = 0x21
	vkNext    = 0x22
	vkEnd     = 0x23
	vkHome    = 0x24
	vkLeft    = 0x25
	vkUp      = 0x26
	vkRight   = 0x27
	vkDown    = 0x28
	vkHelp    = 0x2F
	vkDelete  = 0x2E
	vkLWin    = 0x5B
	vkF1      = 0x70
)

var flagVKs = map[platform.Flag]uint16{
	platform.FlagShift:   vkShift,
	platform.FlagControl: vkControl,
	platform.FlagAlt:     vkMenu,
	platform.FlagMeta:    vkLWin,
	platform.FlagHelp:    vkHelp,
}

var codeVKs = func() map[platform.KeyCode]uint16 {
	m := map[platform.KeyCode]uint16{
		platform.KeyLeftArrow:  vkLeft,
		platform.KeyControl:    vkControl,
		platform.KeyRightArrow: vkRight,
		platform.KeyDownArrow:  vkDown,
		platform.KeyEnd:        vkEnd,
		platform.KeyUpArrow:    vkUp,
		platform.KeyPageUp:     vkPrior,
		platform.KeyAlt:        vkMenu,
		platform.KeyReturn:     vkReturn,
		platform.KeyPageDown:   vkNext,
		platform.KeyDelete:     vkDelete,
		platform.KeyHome:       vkHome,
		platform.KeyEscape:     vkEscape,
		platform.KeyBackspace:  vkBack,
		platform.KeyMeta:       vkLWin,
		platform.KeyCapsLock:   vkCapital,
		platform.KeyShift:      vkShift,
		platform.KeyTab:        vkTab,
		platform.KeySpace:      vkSpace,
	}
	// VK_F1 through VK_F24 are contiguous.
	for k := platform.KeyF1; k <= platform.KeyF24; k++ {
		m[k] = vkF1 + uint16(k-platform.KeyF1)
	}
	return m
}()
