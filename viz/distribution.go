package viz

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// ClassDistribution writes a horizontal bar chart of per-class pixel shares.
// shares and names must be aligned; shares are fractions of the grid.
func ClassDistribution(path string, names []string, shares []float64) error {
	if len(names) != len(shares) {
		return errors.Newf("viz: %d names for %d shares", len(names), len(shares))
	}

	p := plot.New()
	p.Title.Text = "Land-cover class distribution"
	p.X.Label.Text = "share of pixels"

	bars, err := plotter.NewBarChart(plotter.Values(shares), vg.Points(15))
	if err != nil {
		return errors.Wrap(err, "viz: bar chart")
	}
	bars.Horizontal = true
	bars.Color = Palette[1]

	p.Add(bars)
	p.NominalY(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "viz: save %s", path)
	}
	return nil
}
