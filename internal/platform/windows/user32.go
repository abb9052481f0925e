//go:build windows

package windows

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetProcessDPIAware = user32.NewProc("SetProcessDPIAware")
	procIsProcessDPIAware  = user32.NewProc("IsProcessDPIAware")
	procGetDpiForWindow    = user32.NewProc("GetDpiForWindow")
	procGetDesktopWindow   = user32.NewProc("GetDesktopWindow")
	procGetSystemMetrics   = user32.NewProc("GetSystemMetrics")
	procSetCursorPos       = user32.NewProc("SetCursorPos")
	procGetCursorPos       = user32.NewProc("GetCursorPos")
	procSendInput          = user32.NewProc("SendInput")
)

const (
	smCXScreen = 0
	smCYScreen = 1

	inputMouse    = 0
	inputKeyboard = 1

	mouseEventLeftDown   = 0x0002
	mouseEventLeftUp     = 0x0004
	mouseEventRightDown  = 0x0008
	mouseEventRightUp    = 0x0010
	mouseEventMiddleDown = 0x0020
	mouseEventMiddleUp   = 0x0040
	mouseEventWheel      = 0x0800

	keyEventKeyUp   = 0x0002
	keyEventUnicode = 0x0004

	wheelDelta = 120
)

type mouseInput struct {
	Type uint32
	Mi   struct {
		Dx          int32
		Dy          int32
		MouseData   uint32
		DwFlags     uint32
		Time        uint32
		DwExtraInfo uintptr
	}
}

// keyboardInput is padded to the size of the INPUT union's largest member.
type keyboardInput struct {
	Type uint32
	Ki   struct {
		WVk         uint16
		WScan       uint16
		DwFlags     uint32
		Time        uint32
		DwExtraInfo uintptr
	}
	_ [8]byte
}

// inputSize is sizeof(INPUT) as SendInput expects it.
const inputSize = unsafe.Sizeof(mouseInput{})

type point struct {
	X, Y int32
}

func sendInput(ptr unsafe.Pointer) error {
	n, _, err := procSendInput.Call(1, uintptr(ptr), inputSize)
	if n != 1 {
		return err
	}
	return nil
}

func sendMouse(flags uint32, data uint32) error {
	var in mouseInput
	in.Type = inputMouse
	in.Mi.DwFlags = flags
	in.Mi.MouseData = data
	return sendInput(unsafe.Pointer(&in))
}

func sendKey(vk, scan uint16, flags uint32) error {
	var in keyboardInput
	in.Type = inputKeyboard
	in.Ki.WVk = vk
	in.Ki.WScan = scan
	in.Ki.DwFlags = flags
	return sendInput(unsafe.Pointer(&in))
}
