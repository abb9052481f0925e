package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click a mouse button",
	Long:  "Click at the cursor, or at --at after moving there. The button is held for --delay (default mouse.click_delay).",
	Args:  cobra.NoArgs,
	RunE:  runClick,
}

func init() {
	mouseCmd.AddCommand(clickCmd)
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().String("at", "", "Move to x,y (points) before clicking")
	clickCmd.Flags().Bool("double", false, "Double-click")
	clickCmd.Flags().Duration("delay", 0, "Hold time between press and release")
}

func runClick(cmd *cobra.Command, args []string) error {
	buttonStr, _ := cmd.Flags().GetString("button")
	button, err := platform.ParseMouseButton(buttonStr)
	if err != nil {
		return err
	}
	double, _ := cmd.Flags().GetBool("double")

	return withPilot(func(p *pilot.Pilot) error {
		if err := moveIfGiven(cmd, p); err != nil {
			return err
		}
		delay := p.Config().Mouse.ClickDelay
		if cmd.Flags().Changed("delay") {
			delay, _ = cmd.Flags().GetDuration("delay")
		}
		clicks := 1
		if double {
			clicks = 2
		}
		for i := 0; i < clicks; i++ {
			if err := p.Mouse.Click(button, delay); err != nil {
				return err
			}
		}
		action := "click"
		if double {
			action = "double-click"
		}
		return printAction(p, action, button.String())
	})
}
