// Package tuning drives the LightGBM hyperparameter search: a finite
// parameter grid, a randomized search over a fixed temporal train/validation
// design, and the best-result JSON artifact.
package tuning

import (
	"math/rand/v2"
)

// Params is one hyperparameter combination. Values are ints or floats
// depending on the parameter.
type Params map[string]any

// Grid maps parameter names to finite candidate sets, preserving insertion
// order so artifacts and logs list parameters the same way every run.
type Grid struct {
	names  []string
	values map[string][]any
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{values: make(map[string][]any)}
}

// Set registers the candidate set for a parameter, replacing any previous
// candidates but keeping the original position in the ordering.
func (g *Grid) Set(name string, candidates ...any) *Grid {
	if _, ok := g.values[name]; !ok {
		g.names = append(g.names, name)
	}
	g.values[name] = candidates
	return g
}

// Names returns the parameter names in insertion order.
func (g *Grid) Names() []string {
	return g.names
}

// Candidates returns the candidate set for a parameter.
func (g *Grid) Candidates(name string) []any {
	return g.values[name]
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid()
	for _, name := range g.names {
		out.Set(name, append([]any(nil), g.values[name]...)...)
	}
	return out
}

// Map returns the grid as plain maps for serialization.
func (g *Grid) Map() map[string][]any {
	out := make(map[string][]any, len(g.names))
	for name, vals := range g.values {
		out[name] = append([]any(nil), vals...)
	}
	return out
}

// Sample draws one combination, choosing uniformly and independently per
// parameter. Across trials this samples with replacement; the grid is finite
// and the search randomized, so repeats are acceptable.
func (g *Grid) Sample(rng *rand.Rand) Params {
	combo := make(Params, len(g.names))
	for _, name := range g.names {
		candidates := g.values[name]
		combo[name] = candidates[rng.IntN(len(candidates))]
	}
	return combo
}

// ExtendScalePosWeight appends the derived class-imbalance weight to the
// scale_pos_weight candidates, dropping duplicates while preserving
// first-seen order.
func (g *Grid) ExtendScalePosWeight(auto float64) {
	candidates := append(append([]any(nil), g.values["scale_pos_weight"]...), auto)
	seen := make(map[float64]struct{}, len(candidates))
	unique := candidates[:0]
	for _, c := range candidates {
		v, ok := asFloat(c)
		if !ok {
			unique = append(unique, c)
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, c)
	}
	g.Set("scale_pos_weight", unique...)
}

// DefaultLGBMGrid is the base search space for the transition model.
// scale_pos_weight is extended at runtime with the auto value derived from
// the train split.
func DefaultLGBMGrid() *Grid {
	g := NewGrid()
	g.Set("num_leaves", 31, 63, 127)
	g.Set("max_depth", -1, 15, 25)
	g.Set("learning_rate", 0.03, 0.05, 0.1)
	g.Set("min_child_samples", 20, 50, 100)
	g.Set("subsample", 0.7, 0.9)
	g.Set("colsample_bytree", 0.7, 0.9)
	g.Set("scale_pos_weight", 1.0, 2.0, 5.0, 10.0, 20.0, 50.0, 100.0, 200.0)
	g.Set("reg_alpha", 0.0, 0.1, 1.0)
	g.Set("reg_lambda", 0.0, 0.1, 1.0)
	return g
}

// FixedLGBMParams are held constant across trials. The iteration ceiling is
// deliberately high; early stopping decides the effective model size.
func FixedLGBMParams(seed int, numThreads int) Params {
	return Params{
		"random_state":          seed,
		"n_jobs":                numThreads,
		"boosting_type":         "gbdt",
		"objective":             "binary",
		"verbose":               -1,
		"n_estimators":          2000,
		"early_stopping_rounds": 100,
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	case float32:
		return int(x), true
	default:
		return 0, false
	}
}
