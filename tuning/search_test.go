package tuning

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gianluca-kaufmann/pa3030/dataset"
)

// syntheticSplit builds a small linearly separable train/validation pair:
// feature f1 drives the label, f2 is noise.
func syntheticSplit(t *testing.T, nTrain, nVal int) (*dataset.Frame, *dataset.Frame) {
	t.Helper()
	rng := rand.New(rand.NewPCG(7, 7))

	build := func(n int, year float32) *dataset.Frame {
		f1 := make([]float32, n)
		f2 := make([]float32, n)
		target := make([]float32, n)
		years := make([]float32, n)
		for i := 0; i < n; i++ {
			if i%4 == 0 {
				f1[i] = 5 + rng.Float32()
				target[i] = 1
			} else {
				f1[i] = rng.Float32()
			}
			f2[i] = rng.Float32()
			years[i] = year
		}
		f, err := dataset.NewFrame(
			[]string{"f1", "f2", dataset.YearColumn, dataset.TargetColumn},
			map[string][]float32{
				"f1": f1, "f2": f2,
				dataset.YearColumn:   years,
				dataset.TargetColumn: target,
			},
		)
		require.NoError(t, err)
		return f
	}
	return build(nTrain, 2014), build(nVal, 2016)
}

// noiseSplit builds a train/validation pair whose labels carry no signal:
// both features are random and independent of the target.
func noiseSplit(t *testing.T, nTrain, nVal int) (*dataset.Frame, *dataset.Frame) {
	t.Helper()
	rng := rand.New(rand.NewPCG(11, 11))

	build := func(n int, year float32) *dataset.Frame {
		f1 := make([]float32, n)
		f2 := make([]float32, n)
		target := make([]float32, n)
		years := make([]float32, n)
		for i := 0; i < n; i++ {
			f1[i] = rng.Float32()
			f2[i] = rng.Float32()
			if rng.Float32() < 0.3 {
				target[i] = 1
			}
			years[i] = year
		}
		f, err := dataset.NewFrame(
			[]string{"f1", "f2", dataset.YearColumn, dataset.TargetColumn},
			map[string][]float32{
				"f1": f1, "f2": f2,
				dataset.YearColumn:   years,
				dataset.TargetColumn: target,
			},
		)
		require.NoError(t, err)
		return f
	}
	return build(nTrain, 2014), build(nVal, 2016)
}

func TestNewDesignLayout(t *testing.T) {
	train, val := syntheticSplit(t, 12, 8)
	d, err := NewDesign(train, val, []string{"f1", "f2"})
	require.NoError(t, err)

	assert.Equal(t, 12, d.NumTrain)
	assert.Equal(t, 8, d.NumVal)
	require.Len(t, d.Marker, 20)
	require.Len(t, d.Y, 20)

	for i := 0; i < 12; i++ {
		assert.Equal(t, -1, d.Marker[i], "row %d should carry the train marker", i)
	}
	for i := 12; i < 20; i++ {
		assert.Equal(t, 0, d.Marker[i], "row %d should carry the validation marker", i)
	}

	// Train rows come first and keep their feature values.
	assert.InDelta(t, float64(train.Column("f1")[0]), d.X.At(0, 0), 1e-6)
	assert.InDelta(t, float64(val.Column("f1")[0]), d.X.At(12, 0), 1e-6)
}

func TestNewDesignEmptySplit(t *testing.T) {
	full, _ := syntheticSplit(t, 16, 1)

	// A validation window past the frame's last year leaves the validation
	// split empty; that must surface as an error, not a panic downstream.
	train, val := dataset.TemporalSplit(full, 2014, 2020, 2022)
	_, err := NewDesign(train, val, []string{"f1", "f2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-empty")

	// Same for a train window before the frame's first year.
	train, val = dataset.TemporalSplit(full, 2000, 2014, 2014)
	_, err = NewDesign(train, val, []string{"f1", "f2"})
	require.Error(t, err)
}

func TestNewDesignNoFeatures(t *testing.T) {
	train, val := syntheticSplit(t, 8, 4)
	_, err := NewDesign(train, val, nil)
	assert.Error(t, err)
}

func TestDesignPartition(t *testing.T) {
	train, val := syntheticSplit(t, 10, 6)
	d, err := NewDesign(train, val, []string{"f1", "f2"})
	require.NoError(t, err)

	xTrain, yTrain := d.partition(-1, d.NumTrain)
	xVal, yVal := d.partition(0, d.NumVal)

	r, c := xTrain.Dims()
	assert.Equal(t, 10, r)
	assert.Equal(t, 2, c)
	assert.Len(t, yTrain, 10)

	r, _ = xVal.Dims()
	assert.Equal(t, 6, r)
	assert.Len(t, yVal, 6)

	assert.Equal(t, train.BinaryTarget(), yTrain)
	assert.Equal(t, val.BinaryTarget(), yVal)
}

func TestPositiveWeights(t *testing.T) {
	y := []float64{1, 0, 0, 1, 0}
	w := positiveWeights(y, 25)
	assert.Equal(t, []float64{25, 1, 1, 25, 1}, w)
}

func TestAutoScalePosWeight(t *testing.T) {
	assert.Equal(t, 99.0, AutoScalePosWeight(100, 9900))
	// Zero positives must not divide by zero.
	assert.Equal(t, 50.0, AutoScalePosWeight(0, 50))
}

func TestNumThreadsFromEnv(t *testing.T) {
	t.Setenv("SLURM_CPUS_PER_TASK", "16")
	assert.Equal(t, 16, NumThreadsFromEnv())

	t.Setenv("SLURM_CPUS_PER_TASK", "not-a-number")
	assert.Equal(t, -1, NumThreadsFromEnv())

	t.Setenv("SLURM_CPUS_PER_TASK", "")
	assert.Equal(t, -1, NumThreadsFromEnv())
}

func TestRandomizedSearch(t *testing.T) {
	train, val := syntheticSplit(t, 80, 40)
	design, err := NewDesign(train, val, []string{"f1", "f2"})
	require.NoError(t, err)

	grid := DefaultLGBMGrid()
	fixed := FixedLGBMParams(42, 1)
	// The synthetic table is tiny; keep individual trainings short.
	fixed["n_estimators"] = 20
	fixed["early_stopping_rounds"] = 0

	cfg := SearchConfig{NumTrials: 2, Seed: 42, NumThreads: 1}
	res, err := RandomizedSearch(design, grid, fixed, cfg)
	require.NoError(t, err)

	require.Len(t, res.Trials, 2)
	assert.GreaterOrEqual(t, res.BestTrial, 1)
	assert.GreaterOrEqual(t, res.BestScore, 0.0)
	assert.LessOrEqual(t, res.BestScore, 1.0)
	assert.NotEmpty(t, res.BestParams)
	for _, trial := range res.Trials {
		assert.GreaterOrEqual(t, trial.ValScore, 0.0)
		assert.LessOrEqual(t, trial.ValScore, 1.0)
		assert.Equal(t, 20, trial.NumTrees, "without early stopping every trial trains the full ceiling")
	}
}

func TestRandomizedSearchEarlyStopping(t *testing.T) {
	// Labels carry no signal, so the validation loss stops improving almost
	// immediately and training must halt well before the iteration ceiling.
	train, val := noiseSplit(t, 120, 60)
	design, err := NewDesign(train, val, []string{"f1", "f2"})
	require.NoError(t, err)

	grid := DefaultLGBMGrid()
	fixed := FixedLGBMParams(42, 1)
	fixed["n_estimators"] = 60
	fixed["early_stopping_rounds"] = 2

	cfg := SearchConfig{NumTrials: 1, Seed: 42, NumThreads: 1}
	res, err := RandomizedSearch(design, grid, fixed, cfg)
	require.NoError(t, err)

	require.Len(t, res.Trials, 1)
	assert.Less(t, res.Trials[0].NumTrees, 60,
		"early stopping should cut training short on noise-only labels")
	assert.Greater(t, res.Trials[0].NumTrees, 0)
}

func TestRandomizedSearchDeterministicCombos(t *testing.T) {
	train, val := syntheticSplit(t, 40, 20)
	design, err := NewDesign(train, val, []string{"f1", "f2"})
	require.NoError(t, err)

	grid := DefaultLGBMGrid()
	fixed := FixedLGBMParams(42, 1)
	fixed["n_estimators"] = 10
	fixed["early_stopping_rounds"] = 0

	cfg := SearchConfig{NumTrials: 3, Seed: 42, NumThreads: 1}
	a, err := RandomizedSearch(design, grid, fixed, cfg)
	require.NoError(t, err)
	b, err := RandomizedSearch(design, grid, fixed, cfg)
	require.NoError(t, err)

	require.Len(t, b.Trials, len(a.Trials))
	for i := range a.Trials {
		assert.Equal(t, a.Trials[i].Params, b.Trials[i].Params,
			"trial %d should sample the same combination for the same seed", i+1)
	}
}

func TestRandomizedSearchRejectsZeroTrials(t *testing.T) {
	train, val := syntheticSplit(t, 8, 4)
	design, err := NewDesign(train, val, []string{"f1"})
	require.NoError(t, err)

	_, err = RandomizedSearch(design, DefaultLGBMGrid(), Params{}, SearchConfig{NumTrials: 0, Seed: 1})
	assert.Error(t, err)
}
