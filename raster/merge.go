package raster

import (
	"github.com/airbusgeo/godal"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// MergeReport summarizes a template merge, including the statistics of the
// merged band as verified by re-reading the written file.
type MergeReport struct {
	Width, Height int
	// Bands in the output (template bands plus the merged one).
	Bands int
	// NoDataMasked counts source pixels turned into NaN.
	NoDataMasked int
	// Min, Max and Mean over the finite values of the merged band.
	Min, Max, Mean float64
}

// MergeOntoTemplate reprojects the source raster onto the template's grid
// with nearest-neighbor resampling, masks source nodata to NaN, and writes a
// float32 GeoTIFF holding the template's bands followed by the warped source
// as one extra band named bandName.
func MergeOntoTemplate(templatePath, sourcePath, dstPath, bandName string) (*MergeReport, error) {
	registerDrivers()

	tmpl, err := godal.Open(templatePath)
	if err != nil {
		return nil, errors.Wrapf(err, "raster: open template %s", templatePath)
	}
	defer tmpl.Close()

	src, err := godal.Open(sourcePath)
	if err != nil {
		return nil, errors.Wrapf(err, "raster: open source %s", sourcePath)
	}
	defer src.Close()

	srcBands := src.Bands()
	if len(srcBands) == 0 {
		return nil, errors.NewRasterFormatError(sourcePath, "no bands")
	}

	structure := tmpl.Structure()
	sx, sy := structure.SizeX, structure.SizeY
	tmplBands := tmpl.Bands()

	// Warp the source onto the template grid in memory first.
	warped, err := godal.Create(godal.Memory, "", 1, godal.Float32, sx, sy)
	if err != nil {
		return nil, errors.Wrap(err, "raster: create warp target")
	}
	defer warped.Close()
	if err := copyGeoreferencing(tmpl, warped); err != nil {
		return nil, errors.Wrap(err, "raster: georeference warp target")
	}
	if err := warped.WarpInto([]*godal.Dataset{src}, []string{"-r", "near", "-dstnodata", "nan"}); err != nil {
		return nil, errors.Wrapf(err, "raster: warp %s onto template grid", sourcePath)
	}

	merged := make([]float32, sx*sy)
	if err := warped.Bands()[0].Read(0, 0, merged, sx, sy); err != nil {
		return nil, errors.Wrap(err, "raster: read warped band")
	}
	masked := 0
	if nodata, ok := srcBands[0].NoData(); ok {
		masked = MaskNoData(merged, nodata)
	}

	dst, err := godal.Create(godal.GTiff, dstPath, len(tmplBands)+1, godal.Float32, sx, sy,
		godal.CreationOption("COMPRESS=LZW", "TILED=YES"))
	if err != nil {
		return nil, errors.Wrapf(err, "raster: create %s", dstPath)
	}
	defer dst.Close()
	if err := copyGeoreferencing(tmpl, dst); err != nil {
		return nil, errors.Wrapf(err, "raster: georeference %s", dstPath)
	}

	dstBands := dst.Bands()
	buf := make([]float32, sx*sy)
	for b, band := range tmplBands {
		if err := band.Read(0, 0, buf, sx, sy); err != nil {
			return nil, errors.Wrapf(err, "raster: read template band %d", b+1)
		}
		if err := dstBands[b].Write(0, 0, buf, sx, sy); err != nil {
			return nil, errors.Wrapf(err, "raster: write band %d of %s", b+1, dstPath)
		}
	}

	last := dstBands[len(tmplBands)]
	if err := last.SetDescription(bandName); err != nil {
		return nil, errors.Wrapf(err, "raster: describe merged band of %s", dstPath)
	}
	if err := last.Write(0, 0, merged, sx, sy); err != nil {
		return nil, errors.Wrapf(err, "raster: write merged band of %s", dstPath)
	}

	// Verify by reading back what was written, not what was computed.
	verify := make([]float32, sx*sy)
	if err := last.Read(0, 0, verify, sx, sy); err != nil {
		return nil, errors.Wrapf(err, "raster: verify merged band of %s", dstPath)
	}
	min, max, mean, _ := BufferStats(verify)

	return &MergeReport{
		Width:        sx,
		Height:       sy,
		Bands:        len(tmplBands) + 1,
		NoDataMasked: masked,
		Min:          min,
		Max:          max,
		Mean:         mean,
	}, nil
}
