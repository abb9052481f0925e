package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/key"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

// TypeResult is the output of a successful type command.
type TypeResult struct {
	OK     bool    `yaml:"ok"            json:"ok"`
	Action string  `yaml:"action"        json:"action"`
	Text   string  `yaml:"text"          json:"text"`
	Runes  int     `yaml:"runes"         json:"runes"`
	WPM    float64 `yaml:"wpm,omitempty" json:"wpm,omitempty"`
}

var typeCmd = &cobra.Command{
	Use:   "type [text]",
	Short: "Type a string",
	Long: `Type text one character at a time. Text can be passed as a positional
argument, via --text, or on stdin with "-". --wpm paces the typing (0 types as
fast as possible) and --noise adds random pauses of up to that fraction of a
keystroke.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runType,
}

func init() {
	keyCmd.AddCommand(typeCmd)
	typeCmd.Flags().String("text", "", "Text to type")
	typeCmd.Flags().Float64("wpm", 0, "Words per minute (default keyboard.wpm)")
	typeCmd.Flags().Float64("noise", 0, "Random pause fraction (default keyboard.noise)")
}

func runType(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	if len(args) > 0 {
		if text != "" {
			return fmt.Errorf("pass text either as an argument or with --text, not both")
		}
		text = args[0]
	}
	if text == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = strings.TrimSuffix(string(b), "\n")
	}
	if text == "" {
		return fmt.Errorf("nothing to type: pass text as an argument or with --text")
	}
	flagsStr, _ := cmd.Flags().GetString("flags")
	flags, err := key.ParseFlags(flagsStr)
	if err != nil {
		return err
	}

	return withPilot(func(p *pilot.Pilot) error {
		wpm, noise := p.Config().Keyboard.WPM, p.Config().Keyboard.Noise
		if cmd.Flags().Changed("wpm") {
			wpm, _ = cmd.Flags().GetFloat64("wpm")
		}
		if cmd.Flags().Changed("noise") {
			noise, _ = cmd.Flags().GetFloat64("noise")
		}
		if err := p.Keyboard.TypeString(text, flags, wpm, noise); err != nil {
			return err
		}
		return output.Print(TypeResult{
			OK:     true,
			Action: "type",
			Text:   text,
			Runes:  len([]rune(text)),
			WPM:    wpm,
		})
	})
}

