package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gianluca-kaufmann/pa3030/pathcfg"
)

func newPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "print the resolved data locations for this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data root:        %s\n", pathcfg.DataRoot())
			fmt.Fprintf(out, "protected areas:  %s\n", pathcfg.ProtectedAreasRoot())
			fmt.Fprintf(out, "ready rasters:    %s\n", pathcfg.ReadyRoot())
			fmt.Fprintf(out, "ml datasets:      %s\n", pathcfg.MLDir())
			fmt.Fprintf(out, "ndvi:             %s\n", pathcfg.NDVIDir())
			fmt.Fprintf(out, "wdpa:             %s\n", pathcfg.WDPADir())
			fmt.Fprintf(out, "landcover:        %s\n", pathcfg.LandcoverDir())

			if train, err := pathcfg.ResolveTrainParquet(); err == nil {
				fmt.Fprintf(out, "train parquet:    %s\n", train)
			} else {
				fmt.Fprintf(out, "train parquet:    not found\n")
			}
			return nil
		},
	}
}
