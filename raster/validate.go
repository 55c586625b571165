package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// ReadDiscrete reads the band buffers of a discrete land-cover raster. It
// enforces the structural contract (9 uint8 class bands) but not the value
// invariants; use ValidateDiscrete for those.
func ReadDiscrete(path string) (bands [][]uint8, width, height int, err error) {
	registerDrivers()

	ds, err := godal.Open(path)
	if err != nil {
		return nil, 0, 0, errors.Wrapf(err, "raster: open %s", path)
	}
	defer ds.Close()

	structure := ds.Structure()
	width, height = structure.SizeX, structure.SizeY
	dsBands := ds.Bands()
	if len(dsBands) != NumClasses {
		return nil, 0, 0, errors.NewRasterFormatError(path,
			fmt.Sprintf("expected %d class bands, found %d", NumClasses, len(dsBands)))
	}

	bands = make([][]uint8, len(dsBands))
	for b, band := range dsBands {
		if dt := band.Structure().DataType; dt != godal.Byte {
			return nil, 0, 0, errors.NewRasterFormatError(path,
				fmt.Sprintf("band %d has datatype %s, want Byte", b+1, dt))
		}
		buf := make([]uint8, width*height)
		if err := band.Read(0, 0, buf, width, height); err != nil {
			return nil, 0, 0, errors.Wrapf(err, "raster: read band %d of %s", b+1, path)
		}
		bands[b] = buf
	}
	return bands, width, height, nil
}

// ValidateDiscrete checks that a raster holds a discrete land-cover product:
// uint8 bands, every value in {0, 1} and exactly one band set per pixel. The
// report is returned even when the raster is invalid; a violated invariant is
// additionally a RasterFormatError so callers can fail the run.
func ValidateDiscrete(path string) (*ValidationReport, error) {
	bands, width, height, err := ReadDiscrete(path)
	if err != nil {
		return nil, err
	}

	report := CheckOneHot(bands, width, height)
	if !report.Valid() {
		return report, errors.NewRasterFormatError(path,
			fmt.Sprintf("%d values outside {0,1}, %d pixels without exactly one class",
				report.BadValues, report.Violations))
	}
	return report, nil
}
