package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-pilot/internal/bitmap"
	"github.com/mj1618/desktop-pilot/internal/geometry"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find a color or an image on the screen",
	Long: `Search the screen, or an image file given with --haystack, for a color
(--color) or an image (--needle). Matches are top-left points in scan order:
down each column, then on to the next column. --tolerance runs from 0 (exact)
to 1 (anything matches).`,
	Example: `  desktop-pilot find --needle button.png
  desktop-pilot find --color '#ff0000' --all --region 0,0,400,300
  desktop-pilot find --needle icon.png --count --tolerance 0.1`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("needle", "", "Image file to look for")
	findCmd.Flags().String("color", "", "Color to look for, as #rrggbb")
	findCmd.Flags().String("haystack", "", "Search this image file instead of the screen")
	findCmd.Flags().Float64("haystack-scale", 1, "Pixels per point of the --haystack image")
	findCmd.Flags().String("region", "", "Limit the search to x,y,w,h in points")
	findCmd.Flags().String("start", "", "Resume the scan at x,y in points")
	findCmd.Flags().Bool("all", false, "Return every match")
	findCmd.Flags().Bool("count", false, "Only count the matches")
	findCmd.Flags().Float64("tolerance", 0, "Match tolerance 0-1 (default search.tolerance)")
	findCmd.Flags().String("annotate", "", "Save a copy of the haystack with the matches boxed to this path")
	findCmd.MarkFlagsMutuallyExclusive("needle", "color")
	findCmd.MarkFlagsOneRequired("needle", "color")
	findCmd.MarkFlagsMutuallyExclusive("all", "count")
}

func runFind(cmd *cobra.Command, args []string) error {
	region, err := rectFlag(cmd, "region")
	if err != nil {
		return err
	}
	start, hasStart, err := pointFlag(cmd, "start")
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	countOnly, _ := cmd.Flags().GetBool("count")
	annotate, _ := cmd.Flags().GetString("annotate")

	return withPilot(func(p *pilot.Pilot) error {
		haystack, err := loadHaystack(cmd, p)
		if err != nil {
			return err
		}
		opts := bitmap.SearchOptions{
			Tolerance: p.Config().Search.Tolerance,
			Rect:      region,
		}
		if cmd.Flags().Changed("tolerance") {
			opts.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		}
		if hasStart {
			opts.Start = &start
		}

		var (
			matches []geometry.Point
			count   int
			size    geometry.Size
		)
		if colorStr, _ := cmd.Flags().GetString("color"); colorStr != "" {
			c, err := parseColor(colorStr)
			if err != nil {
				return err
			}
			size = geometry.Size{Width: 1 / haystack.Scale(), Height: 1 / haystack.Scale()}
			switch {
			case countOnly:
				count = haystack.CountOfColor(c, opts)
			case all:
				matches = haystack.FindEveryColor(c, opts)
			default:
				if m, ok := haystack.FindColor(c, opts); ok {
					matches = []geometry.Point{m}
				}
			}
		} else {
			path, _ := cmd.Flags().GetString("needle")
			img, err := imaging.Load(path)
			if err != nil {
				return err
			}
			// The needle was cut from an image of the haystack's density.
			needle := bitmap.New(img, haystack.Scale())
			size = needle.Size()
			switch {
			case countOnly:
				count = haystack.CountOfBitmap(needle, opts)
			case all:
				matches = haystack.FindEveryBitmap(needle, opts)
			default:
				if m, ok := haystack.FindBitmap(needle, opts); ok {
					matches = []geometry.Point{m}
				}
			}
		}

		if annotate != "" {
			annotated := imaging.AnnotateMatches(haystack.Image(), matches, size, haystack.Scale())
			if err := imaging.Save(annotate, annotated, 0); err != nil {
				return fmt.Errorf("annotate: %w", err)
			}
		}
		return output.Print(output.NewFindResult(matches, count, opts.Tolerance))
	})
}

// loadHaystack reads --haystack, or captures the whole screen.
func loadHaystack(cmd *cobra.Command, p *pilot.Pilot) (*bitmap.Bitmap, error) {
	path, _ := cmd.Flags().GetString("haystack")
	if path == "" {
		return p.Capture(nil)
	}
	scale, _ := cmd.Flags().GetFloat64("haystack-scale")
	if scale <= 0 {
		return nil, fmt.Errorf("--haystack-scale must be positive, got %g", scale)
	}
	img, err := imaging.Load(path)
	if err != nil {
		return nil, err
	}
	return bitmap.New(img, scale), nil
}
