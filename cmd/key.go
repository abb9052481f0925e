package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/key"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Tap, toggle and type keys",
	Long: `Send keyboard input. Keys are single characters ("a", "A", "1") or names
("enter", "esc", "tab", "up", "pageup", "f5"). Modifiers are given with
--flags as a comma-separated list: shift, ctrl, alt, meta.`,
}

var keyTapCmd = &cobra.Command{
	Use:   "tap <key>",
	Short: "Press and release a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeyTap,
}

var keyToggleCmd = &cobra.Command{
	Use:   "toggle <key> <down|up>",
	Short: "Press or release a key",
	Args:  cobra.ExactArgs(2),
	RunE:  runKeyToggle,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keyTapCmd, keyToggleCmd)
	keyCmd.PersistentFlags().String("flags", "", "Modifiers: shift, ctrl, alt, meta (comma-separated)")
}

func runKeyTap(cmd *cobra.Command, args []string) error {
	k, err := key.ParseKey(args[0])
	if err != nil {
		return err
	}
	flagsStr, _ := cmd.Flags().GetString("flags")
	flags, err := key.ParseFlags(flagsStr)
	if err != nil {
		return err
	}
	return withPilot(func(p *pilot.Pilot) error {
		if err := p.TapKey(k, flags); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "tap", Detail: keyDetail(k, flagsStr)})
	})
}

func runKeyToggle(cmd *cobra.Command, args []string) error {
	k, err := key.ParseKey(args[0])
	if err != nil {
		return err
	}
	var down bool
	switch args[1] {
	case "down":
		down = true
	case "up":
	default:
		return fmt.Errorf("expected down or up, got %q", args[1])
	}
	flagsStr, _ := cmd.Flags().GetString("flags")
	flags, err := key.ParseFlags(flagsStr)
	if err != nil {
		return err
	}
	return withPilot(func(p *pilot.Pilot) error {
		if err := p.Keyboard.Toggle(k, down, flags, p.Config().Keyboard.ModifierDelay); err != nil {
			return err
		}
		detail := fmt.Sprintf("%s %s", keyDetail(k, flagsStr), args[1])
		return output.Print(output.ActionResult{OK: true, Action: "toggle", Detail: detail})
	})
}

func keyDetail(k key.Key, flags string) string {
	if flags == "" {
		return fmt.Sprint(k)
	}
	return fmt.Sprintf("%s+%v", flags, k)
}
