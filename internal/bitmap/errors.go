package bitmap

import (
	"fmt"

	"github.com/mj1618/desktop-pilot/internal/screen"
)

// ErrDimension is returned when a crop or capture region falls outside the
// bitmap or the screen.
var ErrDimension = screen.ErrDimension

// InvalidArgumentError reports a violated precondition: a tolerance outside
// [0, 1], a search rect or start point outside the bitmap, a pixel index out
// of range. Functions in this package panic with it; process boundaries
// recover it with Recover.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Msg
}

func invalidArgument(format string, args ...any) {
	panic(&InvalidArgumentError{Msg: fmt.Sprintf(format, args...)})
}

// Recover converts a recovered *InvalidArgumentError panic into *errp.
// Other panics are re-raised. Use it deferred:
//
//	defer bitmap.Recover(&err)
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(*InvalidArgumentError); ok {
		*errp = e
		return
	}
	panic(r)
}
