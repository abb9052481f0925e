//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c -Wno-deprecated-declarations
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>

static void cg_main_size(double *w, double *h) {
    CGRect b = CGDisplayBounds(CGMainDisplayID());
    *w = b.size.width;
    *h = b.size.height;
}

static double cg_main_scale(void) {
    CGDirectDisplayID id = CGMainDisplayID();
    CGDisplayModeRef mode = CGDisplayCopyDisplayMode(id);
    if (!mode) return 0;
    size_t ph = CGDisplayModeGetPixelHeight(mode);
    size_t h = CGDisplayModeGetHeight(mode);
    CGDisplayModeRelease(mode);
    if (h == 0) return 0;
    return (double)ph / (double)h;
}

static int cg_check_screen_recording(void) {
    if (__builtin_available(macOS 10.15, *)) {
        return CGPreflightScreenCaptureAccess() ? 1 : 0;
    }
    return 1;
}

// Captures a rect given in points into a caller-owned RGBA buffer of
// w x h pixels. Returns 0 on success.
static int cg_capture(double x, double y, double pw, double ph, unsigned char *buf, int w, int h) {
    CGImageRef img = CGDisplayCreateImageForRect(CGMainDisplayID(), CGRectMake(x, y, pw, ph));
    if (!img) return -1;
    CGColorSpaceRef cs = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(buf, w, h, 8, w * 4, cs,
        kCGImageAlphaPremultipliedLast | kCGBitmapByteOrder32Big);
    CGColorSpaceRelease(cs);
    if (!ctx) {
        CGImageRelease(img);
        return -2;
    }
    CGContextDrawImage(ctx, CGRectMake(0, 0, w, h), img);
    CGContextRelease(ctx);
    CGImageRelease(img);
    return 0;
}
*/
import "C"

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// CheckScreenRecordingPermission checks if the process has macOS screen recording permission.
func CheckScreenRecordingPermission() error {
	if C.cg_check_screen_recording() == 0 {
		return fmt.Errorf(
			"screen recording permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	return nil
}

// Display implements platform.DisplayBackend for the main display.
type Display struct {
	once  sync.Once
	scale float64
	err   error
}

// NewDisplay creates a new macOS display backend.
func NewDisplay() *Display {
	return &Display{}
}

// Size returns the main display size in points.
func (d *Display) Size() (geometry.Size, error) {
	var w, h C.double
	C.cg_main_size(&w, &h)
	return geometry.Size{Width: float64(w), Height: float64(h)}, nil
}

// Scale is the ratio of the display mode's pixel height to its point
// height. It is read once and cached.
func (d *Display) Scale() (float64, error) {
	d.once.Do(func() {
		s := float64(C.cg_main_scale())
		if s <= 0 {
			d.err = platform.Unavailable("could not read display mode")
			return
		}
		d.scale = s
	})
	return d.scale, d.err
}

func (d *Display) Capture(pixelRect geometry.Rect) (*image.RGBA, error) {
	if err := CheckScreenRecordingPermission(); err != nil {
		return nil, fmt.Errorf("%w: %v", platform.ErrBackendUnavailable, err)
	}
	scale, err := d.Scale()
	if err != nil {
		return nil, err
	}
	r := pixelRect.Round()
	w, h := int(r.Size.Width), int(r.Size.Height)
	if w <= 0 || h <= 0 {
		return nil, platform.Unavailable("empty capture rect %s", pixelRect)
	}
	pts := r.Scaled(1 / scale)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rc := C.cg_capture(
		C.double(pts.Origin.X), C.double(pts.Origin.Y),
		C.double(pts.Size.Width), C.double(pts.Size.Height),
		(*C.uchar)(unsafe.Pointer(&img.Pix[0])), C.int(w), C.int(h))
	if rc != 0 {
		return nil, platform.Unavailable("screen capture failed (code %d)", int(rc))
	}
	// The display has no transparency; undo any premultiplication artifacts.
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	return img, nil
}
