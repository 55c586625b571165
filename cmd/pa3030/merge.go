package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/pkg/log"
	"github.com/gianluca-kaufmann/pa3030/raster"
)

func newMergeCmd() *cobra.Command {
	var bandName string

	cmd := &cobra.Command{
		Use:   "merge <template.tif> <source.tif> <merged.tif>",
		Short: "warp a raster onto a template grid and stack it as an extra band",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := raster.MergeOntoTemplate(args[0], args[1], args[2], bandName)
			if err != nil {
				return err
			}
			slog.Info("merge finished",
				log.StageKey, "merge",
				"width", report.Width,
				"height", report.Height,
				"bands", report.Bands,
				"nodata_masked", report.NoDataMasked,
				"band_min", report.Min,
				"band_max", report.Max,
				"band_mean", report.Mean,
				"output", args[2],
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&bandName, "band-name", "merged", "description for the stacked band")
	return cmd
}
