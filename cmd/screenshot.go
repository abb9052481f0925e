package cmd

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture the screen or a region of it",
	Long:  "Capture the screen, or --region in points. With --output the image is saved and its details printed; otherwise it is written to stdout as base64.",
	Args:  cobra.NoArgs,
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().String("region", "", "Capture x,y,w,h in points (default: whole screen)")
	screenshotCmd.Flags().String("image-format", "png", "Image format for stdout: png, jpg (files use their extension)")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	screenshotCmd.Flags().Float64("scale", 1, "Downscale factor in (0, 1]")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	region, err := rectFlag(cmd, "region")
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("image-format")
	format, err := imaging.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	quality, _ := cmd.Flags().GetInt("quality")
	factor, _ := cmd.Flags().GetFloat64("scale")

	return withPilot(func(p *pilot.Pilot) error {
		bmp, err := p.Capture(region)
		if err != nil {
			return err
		}
		img, err := imaging.Downscale(bmp.Image(), factor)
		if err != nil {
			return err
		}

		if path != "" {
			if err := imaging.Save(path, img, quality); err != nil {
				return err
			}
			b := img.Bounds()
			return output.Print(output.ScreenshotResult{Path: path, Width: b.Dx(), Height: b.Dy(), Scale: bmp.Scale()})
		}

		// Default: write to stdout as base64 for easy agent consumption
		encoder := base64.NewEncoder(base64.StdEncoding, output.Stdout)
		if err := imaging.Encode(encoder, img, format, quality); err != nil {
			return err
		}
		if err := encoder.Close(); err != nil {
			return err
		}
		_, err = fmt.Fprintln(output.Stdout)
		return err
	})
}
