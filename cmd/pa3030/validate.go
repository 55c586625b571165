package main

import (
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/pkg/log"
	"github.com/gianluca-kaufmann/pa3030/raster"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <discrete.tif>",
		Short: "check a discrete land-cover raster against the one-hot contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := raster.ValidateDiscrete(args[0])
			if report != nil {
				shares := report.ClassShares()
				for b, name := range raster.ClassNames {
					slog.Info("class distribution",
						log.StageKey, "validate",
						"class", name,
						"pixels", humanize.Comma(int64(report.ClassPixels[b])),
						"share", shares[b],
					)
				}
			}
			if err != nil {
				return err
			}
			slog.Info("raster valid",
				log.StageKey, "validate",
				"width", report.Width,
				"height", report.Height,
			)
			return nil
		},
	}
}
