package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

// ScaleResult is the output of screen scale.
type ScaleResult struct {
	Scale float64 `yaml:"scale" json:"scale"`
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Query the main display",
}

var screenSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Print the display size in points, its scale and its size in pixels",
	Args:  cobra.NoArgs,
	RunE:  runScreenSize,
}

var screenScaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Print the number of pixels per point",
	Args:  cobra.NoArgs,
	RunE:  runScreenScale,
}

var screenColorCmd = &cobra.Command{
	Use:   "color [x,y]",
	Short: "Print the color at a point, or under the cursor",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScreenColor,
}

var screenVisibleCmd = &cobra.Command{
	Use:   "visible <x,y | x,y,w,h>",
	Short: "Report whether a point or rect lies on the display",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenVisible,
}

func init() {
	rootCmd.AddCommand(screenCmd)
	screenCmd.AddCommand(screenSizeCmd, screenScaleCmd, screenColorCmd, screenVisibleCmd)
}

func runScreenSize(cmd *cobra.Command, args []string) error {
	return withPilot(func(p *pilot.Pilot) error {
		size, err := p.Screen.Size()
		if err != nil {
			return err
		}
		scale, err := p.Screen.Scale()
		if err != nil {
			return err
		}
		return output.Print(output.NewScreenInfo(size, scale))
	})
}

func runScreenScale(cmd *cobra.Command, args []string) error {
	return withPilot(func(p *pilot.Pilot) error {
		scale, err := p.Screen.Scale()
		if err != nil {
			return err
		}
		return output.Print(ScaleResult{Scale: scale})
	})
}

func runScreenColor(cmd *cobra.Command, args []string) error {
	return withPilot(func(p *pilot.Pilot) error {
		if len(args) == 0 {
			c, loc, err := p.ColorAtCursor()
			if err != nil {
				return err
			}
			return output.Print(output.NewColor(loc, c))
		}
		pt, err := geometry.ParsePoint(args[0])
		if err != nil {
			return err
		}
		c, err := p.Screen.GetColor(pt)
		if err != nil {
			return err
		}
		return output.Print(output.NewColor(pt, c))
	})
}

func runScreenVisible(cmd *cobra.Command, args []string) error {
	return withPilot(func(p *pilot.Pilot) error {
		var (
			visible bool
			err     error
		)
		if pt, perr := geometry.ParsePoint(args[0]); perr == nil {
			visible, err = p.Screen.IsPointVisible(pt)
		} else if r, rerr := geometry.ParseRect(args[0]); rerr == nil {
			visible, err = p.Screen.IsRectVisible(r)
		} else {
			return fmt.Errorf("expected x,y or x,y,w,h, got %q", args[0])
		}
		if err != nil {
			return err
		}
		return output.Print(output.VisibleResult{Visible: visible})
	})
}
