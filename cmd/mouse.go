package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

var mouseCmd = &cobra.Command{
	Use:   "mouse",
	Short: "Move, click, drag and scroll the mouse",
}

var mouseLocationCmd = &cobra.Command{
	Use:   "location",
	Short: "Print the cursor position in points",
	Args:  cobra.NoArgs,
	RunE:  runMouseLocation,
}

var mouseMoveCmd = &cobra.Command{
	Use:   "move <x,y>",
	Short: "Move the cursor to a point",
	Long:  "Warp the cursor to a point, or glide it there with --smooth. Coordinates are in points.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMouseMove,
}

var mouseToggleCmd = &cobra.Command{
	Use:       "toggle <down|up>",
	Short:     "Press or release a mouse button at the cursor",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"down", "up"},
	RunE:      runMouseToggle,
}

func init() {
	rootCmd.AddCommand(mouseCmd)
	mouseCmd.AddCommand(mouseLocationCmd, mouseMoveCmd, mouseToggleCmd)

	mouseMoveCmd.Flags().Bool("smooth", false, "Glide along a human-like path instead of warping")
	mouseMoveCmd.Flags().Duration("duration", 0, "Glide duration (implies --smooth; default mouse.smooth_duration)")

	mouseToggleCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
}

func runMouseLocation(cmd *cobra.Command, args []string) error {
	return withPilot(func(p *pilot.Pilot) error {
		loc, err := p.Mouse.Location()
		if err != nil {
			return err
		}
		return output.Print(output.NewPoint(loc))
	})
}

func runMouseMove(cmd *cobra.Command, args []string) error {
	dest, err := geometry.ParsePoint(args[0])
	if err != nil {
		return err
	}
	smooth, _ := cmd.Flags().GetBool("smooth")
	duration, _ := cmd.Flags().GetDuration("duration")

	return withPilot(func(p *pilot.Pilot) error {
		switch {
		case cmd.Flags().Changed("duration"):
			err = p.Mouse.SmoothMove(dest, duration)
		default:
			err = p.MoveTo(dest, smooth)
		}
		if err != nil {
			return err
		}
		return printAction(p, "move", dest.String())
	})
}

func runMouseToggle(cmd *cobra.Command, args []string) error {
	var down bool
	switch args[0] {
	case "down":
		down = true
	case "up":
	default:
		return fmt.Errorf("expected down or up, got %q", args[0])
	}
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}
	return withPilot(func(p *pilot.Pilot) error {
		if err := p.Mouse.Toggle(button, down); err != nil {
			return err
		}
		return printAction(p, "toggle", fmt.Sprintf("%s %s", button, args[0]))
	})
}

// printAction prints an ActionResult carrying the cursor position.
func printAction(p *pilot.Pilot, action, detail string) error {
	res := output.ActionResult{OK: true, Action: action, Detail: detail}
	if loc, err := p.Mouse.Location(); err == nil {
		pt := output.NewPoint(loc)
		res.Cursor = &pt
	}
	return output.Print(res)
}
