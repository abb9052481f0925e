package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

// WaitResult is the output of a wait command.
type WaitResult struct {
	OK       bool                `yaml:"ok"                  json:"ok"`
	Action   string              `yaml:"action"              json:"action"`
	Elapsed  string              `yaml:"elapsed"             json:"elapsed"`
	Match    *output.PointResult `yaml:"match,omitempty"     json:"match,omitempty"`
	TimedOut bool                `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a color or image to appear on the screen",
	Long:  "Capture the screen every --interval until --color or --needle is found (or, with --gone, no longer found) or --timeout passes.",
	Args:  cobra.NoArgs,
	RunE:  runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().String("needle", "", "Image file to wait for")
	waitCmd.Flags().String("color", "", "Color to wait for, as #rrggbb")
	waitCmd.Flags().String("region", "", "Limit the search to x,y,w,h in points")
	waitCmd.Flags().Float64("tolerance", 0, "Match tolerance 0-1 (default search.tolerance)")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until the match is NO LONGER on screen")
	waitCmd.Flags().Duration("timeout", 30*time.Second, "Max time to wait")
	waitCmd.Flags().Duration("interval", 500*time.Millisecond, "Polling interval")
	waitCmd.MarkFlagsMutuallyExclusive("needle", "color")
	waitCmd.MarkFlagsOneRequired("needle", "color")
}

func runWait(cmd *cobra.Command, args []string) error {
	region, err := rectFlag(cmd, "region")
	if err != nil {
		return err
	}
	gone, _ := cmd.Flags().GetBool("gone")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	interval, _ := cmd.Flags().GetDuration("interval")

	return withPilot(func(p *pilot.Pilot) error {
		opts := bitmap.SearchOptions{Tolerance: p.Config().Search.Tolerance, Rect: region}
		if cmd.Flags().Changed("tolerance") {
			opts.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		}
		find, err := waitMatcher(cmd, opts)
		if err != nil {
			return err
		}

		var match *geometry.Point
		cond := func(frame *bitmap.Bitmap) bool {
			m, ok := find(frame)
			if ok {
				match = &m
			} else {
				match = nil
			}
			return ok != gone
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		start := time.Now()
		err = p.WaitFor(ctx, interval, cond)
		res := WaitResult{Action: "wait", Elapsed: time.Since(start).Round(time.Millisecond).String()}
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			res.TimedOut = true
			if perr := output.Print(res); perr != nil {
				return perr
			}
			return fmt.Errorf("timed out after %s", timeout)
		case err != nil:
			return err
		}
		res.OK = true
		if match != nil {
			pt := output.NewPoint(*match)
			res.Match = &pt
		}
		return output.Print(res)
	})
}

// waitMatcher returns the search run against each captured frame.
func waitMatcher(cmd *cobra.Command, opts bitmap.SearchOptions) (func(*bitmap.Bitmap) (geometry.Point, bool), error) {
	if colorStr, _ := cmd.Flags().GetString("color"); colorStr != "" {
		c, err := parseColor(colorStr)
		if err != nil {
			return nil, err
		}
		return func(frame *bitmap.Bitmap) (geometry.Point, bool) {
			return frame.FindColor(c, opts)
		}, nil
	}
	path, _ := cmd.Flags().GetString("needle")
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	return func(frame *bitmap.Bitmap) (geometry.Point, bool) {
		return frame.FindBitmap(bitmap.New(img, frame.Scale()), opts)
	}, nil
}
