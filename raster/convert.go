package raster

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

var registerOnce sync.Once

// registerDrivers initializes GDAL's format drivers once per process.
func registerDrivers() {
	registerOnce.Do(godal.RegisterAll)
}

// ConvertReport summarizes a probability-to-discrete conversion.
type ConvertReport struct {
	Width, Height int
	// ClassPixels is the per-band winner count, aligned with ClassNames.
	ClassPixels []int
	// Violations counts output pixels whose band sum is not exactly 1.
	// By construction of the argmax this is zero; it is re-checked anyway.
	Violations int
}

// Discretize reads an n-band probability GeoTIFF, assigns each pixel to its
// highest-probability band (NaN counts as zero) and writes a uint8 one-hot
// GeoTIFF with nodata 0 and LZW compression, preserving the source
// georeferencing.
func Discretize(srcPath, dstPath string) (*ConvertReport, error) {
	registerDrivers()

	src, err := godal.Open(srcPath)
	if err != nil {
		return nil, errors.Wrapf(err, "raster: open %s", srcPath)
	}
	defer src.Close()

	structure := src.Structure()
	sx, sy := structure.SizeX, structure.SizeY
	srcBands := src.Bands()
	if len(srcBands) == 0 {
		return nil, errors.NewRasterFormatError(srcPath, "no bands")
	}

	probs := make([][]float32, len(srcBands))
	for b, band := range srcBands {
		buf := make([]float32, sx*sy)
		if err := band.Read(0, 0, buf, sx, sy); err != nil {
			return nil, errors.Wrapf(err, "raster: read band %d of %s", b+1, srcPath)
		}
		probs[b] = buf
	}

	onehot := OneHot(probs)

	dst, err := godal.Create(godal.GTiff, dstPath, len(onehot), godal.Byte, sx, sy,
		godal.CreationOption("COMPRESS=LZW", "TILED=YES"))
	if err != nil {
		return nil, errors.Wrapf(err, "raster: create %s", dstPath)
	}
	defer dst.Close()

	if err := copyGeoreferencing(src, dst); err != nil {
		return nil, errors.Wrapf(err, "raster: georeference %s", dstPath)
	}

	for b, band := range dst.Bands() {
		if err := band.SetNoData(0); err != nil {
			return nil, errors.Wrapf(err, "raster: nodata on band %d of %s", b+1, dstPath)
		}
		if b < len(ClassNames) {
			if err := band.SetDescription(ClassNames[b]); err != nil {
				return nil, errors.Wrapf(err, "raster: describe band %d of %s", b+1, dstPath)
			}
		}
		if err := band.Write(0, 0, onehot[b], sx, sy); err != nil {
			return nil, errors.Wrapf(err, "raster: write band %d of %s", b+1, dstPath)
		}
	}

	check := CheckOneHot(onehot, sx, sy)
	return &ConvertReport{
		Width:       sx,
		Height:      sy,
		ClassPixels: check.ClassPixels,
		Violations:  check.Violations,
	}, nil
}

func copyGeoreferencing(src, dst *godal.Dataset) error {
	gt, err := src.GeoTransform()
	if err != nil {
		return fmt.Errorf("read geotransform: %w", err)
	}
	if err := dst.SetGeoTransform(gt); err != nil {
		return fmt.Errorf("set geotransform: %w", err)
	}
	sr := src.SpatialRef()
	defer sr.Close()
	if err := dst.SetSpatialRef(sr); err != nil {
		return fmt.Errorf("set spatial ref: %w", err)
	}
	return nil
}
