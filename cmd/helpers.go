package cmd

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

// withPilot builds the pilot and runs fn. Invalid-argument panics from the
// search code come back as errors.
func withPilot(fn func(p *pilot.Pilot) error) (err error) {
	p, err := newPilot(appConfig)
	if err != nil {
		return err
	}
	defer bitmap.Recover(&err)
	return fn(p)
}

// pointFlag parses an "x,y" flag. ok is false when the flag was not given.
func pointFlag(cmd *cobra.Command, name string) (p geometry.Point, ok bool, err error) {
	if !cmd.Flags().Changed(name) {
		return geometry.Point{}, false, nil
	}
	s, _ := cmd.Flags().GetString(name)
	p, err = geometry.ParsePoint(s)
	if err != nil {
		return geometry.Point{}, false, fmt.Errorf("--%s: %w", name, err)
	}
	return p, true, nil
}

// rectFlag parses an "x,y,w,h" flag. It returns nil when the flag was not given.
func rectFlag(cmd *cobra.Command, name string) (*geometry.Rect, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	s, _ := cmd.Flags().GetString(name)
	r, err := geometry.ParseRect(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &r, nil
}

// parseColor accepts "#rrggbb" or "rrggbb".
func parseColor(s string) (color.RGBA, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || len(b) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid color %q (use #rrggbb)", s)
	}
	return color.RGBA{R: b[0], G: b[1], B: b[2], A: 0xff}, nil
}

// moveIfGiven moves the cursor to the --at flag, if set.
func moveIfGiven(cmd *cobra.Command, p *pilot.Pilot) error {
	at, ok, err := pointFlag(cmd, "at")
	if err != nil || !ok {
		return err
	}
	return p.Mouse.MoveTo(at)
}
