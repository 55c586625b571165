// Package viz renders discrete land-cover rasters as class-map PNGs and
// plots per-class pixel distributions.
package viz

import "image/color"

// Palette holds the DynamicWorld class colors, aligned with
// raster.ClassNames.
var Palette = []color.RGBA{
	{R: 0x41, G: 0x9B, B: 0xDF, A: 0xFF}, // water
	{R: 0x39, G: 0x7D, B: 0x49, A: 0xFF}, // trees
	{R: 0x88, G: 0xB0, B: 0x53, A: 0xFF}, // grass
	{R: 0x7A, G: 0x87, B: 0xC6, A: 0xFF}, // flooded_vegetation
	{R: 0xE4, G: 0x96, B: 0x35, A: 0xFF}, // crops
	{R: 0xDF, G: 0xC3, B: 0x5A, A: 0xFF}, // shrub_and_scrub
	{R: 0xC4, G: 0x28, B: 0x1B, A: 0xFF}, // built
	{R: 0xA5, G: 0x9B, B: 0x8F, A: 0xFF}, // bare
	{R: 0xB3, G: 0x9F, B: 0xE1, A: 0xFF}, // snow_and_ice
}

// NoClass marks a pixel with no land-cover class; it renders transparent.
const NoClass = 0xFF
