package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

var scrollCmd = &cobra.Command{
	Use:       "scroll <up|down>",
	Short:     "Scroll the mouse wheel",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down"},
	RunE:      runScroll,
}

func init() {
	mouseCmd.AddCommand(scrollCmd)
	scrollCmd.Flags().Int("clicks", 3, "Number of wheel clicks")
	scrollCmd.Flags().String("at", "", "Move to x,y (points) before scrolling")
}

func runScroll(cmd *cobra.Command, args []string) error {
	direction, err := platform.ParseScrollDirection(args[0])
	if err != nil {
		return err
	}
	clicks, _ := cmd.Flags().GetInt("clicks")
	if clicks < 1 {
		return fmt.Errorf("--clicks must be at least 1, got %d", clicks)
	}

	return withPilot(func(p *pilot.Pilot) error {
		if err := moveIfGiven(cmd, p); err != nil {
			return err
		}
		if err := p.Mouse.Scroll(direction, clicks); err != nil {
			return err
		}
		return printAction(p, "scroll", fmt.Sprintf("%s x%d", direction, clicks))
	})
}
