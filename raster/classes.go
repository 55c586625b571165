// Package raster converts, validates and merges the land-cover GeoTIFFs that
// feed the transition model. The numeric work (argmax, one-hot checks, nodata
// masking) lives in pure kernels over flat band buffers; GDAL touches the
// disk through thin godal wrappers around them.
package raster

// ClassNames are the DynamicWorld land-cover classes, in band order. A
// discrete land-cover raster carries one uint8 band per class.
var ClassNames = []string{
	"water",
	"trees",
	"grass",
	"flooded_vegetation",
	"crops",
	"shrub_and_scrub",
	"built",
	"bare",
	"snow_and_ice",
}

// NumClasses is the number of DynamicWorld classes.
const NumClasses = 9
