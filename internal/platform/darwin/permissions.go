//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework Foundation
#include <ApplicationServices/ApplicationServices.h>

static int is_trusted() {
    return AXIsProcessTrusted();
}

static int prompt_trusted() {
    const void *keys[] = { kAXTrustedCheckOptionPrompt };
    const void *values[] = { kCFBooleanTrue };
    CFDictionaryRef opts = CFDictionaryCreate(NULL, keys, values, 1,
        &kCFTypeDictionaryKeyCallBacks, &kCFTypeDictionaryValueCallBacks);
    int trusted = AXIsProcessTrustedWithOptions(opts);
    CFRelease(opts);
    return trusted;
}
*/
import "C"
import (
	"fmt"

	"go.uber.org/zap"
)

// CheckAccessibilityPermission checks if the process has macOS accessibility permission.
// Synthetic input events are silently dropped without it.
func CheckAccessibilityPermission() error {
	if C.is_trusted() == 0 {
		return fmt.Errorf(
			"accessibility permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// IsAccessibilityTrusted returns true if the process has accessibility permission.
func IsAccessibilityTrusted() bool {
	return C.is_trusted() != 0
}

// RequestPermissions shows the system accessibility prompt when the process
// is not yet trusted and logs what is still missing.
func RequestPermissions() {
	logger := zap.L().Named("darwin")
	if C.prompt_trusted() == 0 {
		logger.Warn("accessibility permission not granted; input events will be ignored")
	}
	if err := CheckScreenRecordingPermission(); err != nil {
		logger.Warn("screen recording permission not granted; captures will fail")
	}
}
