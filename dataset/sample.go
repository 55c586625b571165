package dataset

import (
	"math/rand/v2"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// YearSample reports what the sampler kept for one year.
type YearSample struct {
	Year         int
	Positives    int
	Negatives    int
	NegativesAll int
}

// SampleByYear applies the per-year class-imbalance mitigation: for every
// distinct year, all positive rows are kept and negative rows are reduced to
// at most maxNegPerYear by uniform sampling without replacement. The combined
// result is globally shuffled. Both the subsampling and the shuffle are
// driven by a PCG generator seeded with seed, so output ordering is fully
// reproducible for a given seed and input.
//
// Year and target columns must exist; their absence is a configuration error
// reported before any sampling work begins.
func SampleByYear(f *Frame, maxNegPerYear int, seed uint64) (*Frame, []YearSample, error) {
	if !f.Has(YearColumn) {
		return nil, nil, errors.NewMissingColumnError(YearColumn, "sampling input")
	}
	if !f.Has(TargetColumn) {
		return nil, nil, errors.NewMissingColumnError(TargetColumn, "sampling input")
	}

	rng := rand.New(rand.NewPCG(seed, seed))

	years := f.Years()
	target := f.Column(TargetColumn)
	yearCol := f.Column(YearColumn)

	var stats []YearSample
	var kept []int
	for _, year := range years {
		var pos, neg []int
		for i := range yearCol {
			if int(yearCol[i]) != year {
				continue
			}
			if target[i] > 0 {
				pos = append(pos, i)
			} else {
				neg = append(neg, i)
			}
		}

		negAll := len(neg)
		if len(neg) > maxNegPerYear {
			rng.Shuffle(len(neg), func(i, j int) {
				neg[i], neg[j] = neg[j], neg[i]
			})
			neg = neg[:maxNegPerYear]
		}

		kept = append(kept, pos...)
		kept = append(kept, neg...)
		stats = append(stats, YearSample{
			Year:         year,
			Positives:    len(pos),
			Negatives:    len(neg),
			NegativesAll: negAll,
		})
	}

	// Global shuffle across years, same generator.
	rng.Shuffle(len(kept), func(i, j int) {
		kept[i], kept[j] = kept[j], kept[i]
	})

	return f.Select(kept), stats, nil
}
