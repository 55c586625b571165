package viz

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// FromOneHot flattens one-hot class bands into a class-index grid. Pixels
// with no band set become NoClass; with several bands set the lowest wins.
func FromOneHot(bands [][]uint8) []uint8 {
	if len(bands) == 0 {
		return nil
	}
	classes := make([]uint8, len(bands[0]))
	for i := range classes {
		classes[i] = NoClass
		for b := range bands {
			if bands[b][i] != 0 {
				classes[i] = uint8(b)
				break
			}
		}
	}
	return classes
}

// ClassMap renders a class-index grid (row-major, width*height entries) into
// an RGBA image using the DynamicWorld palette. Class indices outside the
// palette and NoClass pixels are transparent.
func ClassMap(classes []uint8, width, height int) (*image.RGBA, error) {
	if len(classes) != width*height {
		return nil, errors.Newf("viz: class grid has %d entries, want %d (%dx%d)",
			len(classes), width*height, width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := classes[y*width+x]
			if int(c) >= len(Palette) {
				img.SetRGBA(x, y, color.RGBA{})
				continue
			}
			img.SetRGBA(x, y, Palette[c])
		}
	}
	return img, nil
}

// SaveClassMap renders the class grid and writes it as a PNG.
func SaveClassMap(path string, classes []uint8, width, height int) error {
	img, err := ClassMap(classes, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "viz: create %s", path)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "viz: encode %s", path)
	}
	return nil
}
