package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/pkg/log"
	"github.com/gianluca-kaufmann/pa3030/raster"
	"github.com/gianluca-kaufmann/pa3030/viz"
)

func newVisualizeCmd() *cobra.Command {
	var (
		mapOut  string
		distOut string
	)

	cmd := &cobra.Command{
		Use:   "visualize <discrete.tif>",
		Short: "render a discrete land-cover raster as a class map and distribution chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bands, width, height, err := raster.ReadDiscrete(args[0])
			if err != nil {
				return err
			}

			if mapOut != "" {
				classes := viz.FromOneHot(bands)
				if err := viz.SaveClassMap(mapOut, classes, width, height); err != nil {
					return err
				}
				slog.Info("class map written", log.StageKey, "visualize", "output", mapOut)
			}

			if distOut != "" {
				report := raster.CheckOneHot(bands, width, height)
				if err := viz.ClassDistribution(distOut, raster.ClassNames, report.ClassShares()); err != nil {
					return err
				}
				slog.Info("distribution chart written", log.StageKey, "visualize", "output", distOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mapOut, "map", "class_map.png", "class map PNG (empty to skip)")
	cmd.Flags().StringVar(&distOut, "dist", "class_distribution.png", "distribution chart PNG (empty to skip)")
	return cmd
}
