package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/pilot"
)

var dragCmd = &cobra.Command{
	Use:   "drag",
	Short: "Drag with the left button from one point to another",
	Long:  "Press the left button at --from, glide to --to over mouse.smooth_duration and release.",
	Args:  cobra.NoArgs,
	RunE:  runDrag,
}

func init() {
	mouseCmd.AddCommand(dragCmd)
	dragCmd.Flags().String("from", "", "Start point x,y in points (required)")
	dragCmd.Flags().String("to", "", "End point x,y in points (required)")
	_ = dragCmd.MarkFlagRequired("from")
	_ = dragCmd.MarkFlagRequired("to")
}

func runDrag(cmd *cobra.Command, args []string) error {
	from, _, err := pointFlag(cmd, "from")
	if err != nil {
		return err
	}
	to, _, err := pointFlag(cmd, "to")
	if err != nil {
		return err
	}
	return withPilot(func(p *pilot.Pilot) error {
		if err := p.Drag(from, to); err != nil {
			return err
		}
		return printAction(p, "drag", fmt.Sprintf("%s -> %s", from, to))
	})
}
