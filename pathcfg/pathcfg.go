// Package pathcfg resolves data locations for the thesis pipelines. Runs
// happen in two places: the Euler cluster (scratch filesystem) and a local
// machine. RUN_ENV forces one of the two; otherwise the hostname decides.
package pathcfg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// Default roots. Overridable through PA3030_CLUSTER_ROOT / PA3030_LOCAL_ROOT
// so tests and forks do not depend on one person's directory layout.
const (
	defaultClusterRoot = "/cluster/scratch/gikaufmann/thesis_data"
	defaultLocalRoot   = "data"
)

// GCS locations of the published datasets, kept for provenance in artifacts.
const (
	GCSProtectedAreas = "gs://protected-areas"
	GCSData           = GCSProtectedAreas + "/data"
	GCSML             = GCSData + "/ml"
)

func clusterRoot() string {
	if v := os.Getenv("PA3030_CLUSTER_ROOT"); v != "" {
		return v
	}
	return defaultClusterRoot
}

func localRoot() string {
	if v := os.Getenv("PA3030_LOCAL_ROOT"); v != "" {
		return v
	}
	return defaultLocalRoot
}

func runningOnCluster(hostname string) bool {
	return strings.HasPrefix(hostname, "eu-") || strings.Contains(hostname, "euler")
}

// DataRoot returns the base directory for filesystem data on this machine.
// RUN_ENV=cluster or RUN_ENV=local overrides hostname detection.
func DataRoot() string {
	switch strings.ToLower(os.Getenv("RUN_ENV")) {
	case "cluster", "euler":
		return clusterRoot()
	case "local":
		return localRoot()
	}
	hostname, err := os.Hostname()
	if err == nil && runningOnCluster(hostname) {
		return clusterRoot()
	}
	return localRoot()
}

// ProtectedAreasRoot returns <root>/protected-areas.
func ProtectedAreasRoot() string {
	return filepath.Join(DataRoot(), "protected-areas")
}

// ReadyRoot returns the directory of analysis-ready rasters.
func ReadyRoot() string {
	return filepath.Join(ProtectedAreasRoot(), "data", "ready")
}

// MLDir returns the directory of modeling datasets and artifacts.
func MLDir() string {
	return filepath.Join(ProtectedAreasRoot(), "data", "ml")
}

// NDVIDir returns the NDVI raster directory.
func NDVIDir() string {
	return filepath.Join(ReadyRoot(), "NDVI")
}

// WDPADir returns the WDPA raster directory.
func WDPADir() string {
	return filepath.Join(ReadyRoot(), "WDPA")
}

// LandcoverDir returns the land-cover raster directory.
func LandcoverDir() string {
	return filepath.Join(ReadyRoot(), "landcover")
}

// ResolveTrainParquet locates train.parquet, preferring $SCRATCH when set.
// Returns an InputNotFoundError when no candidate exists.
func ResolveTrainParquet() (string, error) {
	var candidates []string
	if scratch := os.Getenv("SCRATCH"); scratch != "" {
		candidates = append(candidates, filepath.Join(scratch, "data", "ml", "train.parquet"))
	}
	candidates = append(candidates, filepath.Join("data", "ml", "train.parquet"))

	for _, cand := range candidates {
		if _, err := os.Stat(cand); err == nil {
			return cand, nil
		}
	}
	return "", errors.NewInputNotFoundError("train.parquet", candidates)
}
