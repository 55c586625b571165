// pa3030 is the protected-area transition-modeling toolkit: LightGBM
// hyperparameter tuning over the training parquet, plus the land-cover
// raster utilities feeding it.
package main

import (
	"log/slog"
	"os"

	"github.com/gianluca-kaufmann/pa3030/pkg/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", log.ErrAttr(err))
		os.Exit(1)
	}
}
