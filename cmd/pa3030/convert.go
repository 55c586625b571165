package main

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/pkg/log"
	"github.com/gianluca-kaufmann/pa3030/raster"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <probabilities.tif> <discrete.tif>",
		Short: "convert a probability land-cover raster to a one-hot discrete raster",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := raster.Discretize(args[0], args[1])
			if err != nil {
				return err
			}

			for b, count := range report.ClassPixels {
				name := "band"
				if b < len(raster.ClassNames) {
					name = raster.ClassNames[b]
				}
				slog.Info("class assigned",
					log.StageKey, "convert",
					"class", name,
					"pixels", humanize.Comma(int64(count)),
				)
			}
			slog.Info("conversion finished",
				log.StageKey, "convert",
				"width", report.Width,
				"height", report.Height,
				"violations", report.Violations,
				"output", args[1],
			)
			return nil
		},
	}
}
