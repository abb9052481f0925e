//go:build linux && cgo

package x11

/*
#cgo LDFLAGS: -lX11 -lXtst
#include <X11/Xlib.h>
#include <X11/Xresource.h>
#include <stdlib.h>
#include <string.h>

static double x_default_dpi(Display *d) {
    int screen = DefaultScreen(d);
    double width = (double)DisplayWidth(d, screen);
    double widthMM = (double)DisplayWidthMM(d, screen);
    if (widthMM <= 0) return 96.0;
    return width * 25.4 / widthMM;
}

// Returns the Xft.dpi resource string or NULL. The result must be freed.
static char *x_xft_dpi(Display *d) {
    XrmInitialize();
    char *rms = XResourceManagerString(d);
    if (!rms) return NULL;
    XrmDatabase db = XrmGetStringDatabase(rms);
    if (!db) return NULL;
    char *type = NULL;
    XrmValue value;
    char *out = NULL;
    if (XrmGetResource(db, "Xft.dpi", "String", &type, &value) && value.addr) {
        out = strdup(value.addr);
    }
    XrmDestroyDatabase(db);
    return out;
}
*/
import "C"

import (
	"math"
	"strconv"
	"sync"
	"unsafe"

	"github.com/mj1618/desktop-pilot/internal/platform"
)

// conn is the process-wide X connection, opened on first use. Xlib calls
// are serialized by mu.
var conn struct {
	mu       sync.Mutex
	initOnce sync.Once
	display  *C.Display
	scale    float64
}

func open() error {
	conn.initOnce.Do(func() { C.XInitThreads() })
	d := C.XOpenDisplay(nil)
	if d == nil {
		return platform.Unavailable("can't open X display; is DISPLAY set and an X server running?")
	}
	conn.display = d
	conn.scale = scaleForDPI(readDPI(d))
	return nil
}

// withDisplay runs fn with the shared connection held.
func withDisplay(fn func(d *C.Display) error) error {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.display == nil {
		if err := open(); err != nil {
			return err
		}
	}
	return fn(conn.display)
}

// Shutdown closes the shared X connection. The next call opens a new one.
func Shutdown() {
	conn.mu.Lock()
	defer conn.mu.Unlock()
	if conn.display != nil {
		C.XCloseDisplay(conn.display)
		conn.display = nil
	}
}

func readDPI(d *C.Display) float64 {
	dpi := float64(C.x_default_dpi(d))
	if cs := C.x_xft_dpi(d); cs != nil {
		defer C.free(unsafe.Pointer(cs))
		if v, err := strconv.ParseFloat(C.GoString(cs), 64); err == nil && v > 0 {
			dpi = v
		}
	}
	return dpi
}

// scaleForDPI converts a DPI value to a scale factor truncated to two
// decimals, with 96 DPI as 1.0.
func scaleForDPI(dpi float64) float64 {
	s := math.Floor(dpi/96*100) / 100
	if s <= 0 {
		return 1
	}
	return s
}
