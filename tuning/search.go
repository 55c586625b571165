package tuning

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/YuminosukeSato/scigo/metrics"
	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"github.com/schollz/progressbar/v3"
	"gonum.org/v1/gonum/mat"

	"github.com/gianluca-kaufmann/pa3030/dataset"
	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
	"github.com/gianluca-kaufmann/pa3030/pkg/log"
)

// NumThreadsFromEnv reads the worker count from SLURM_CPUS_PER_TASK.
// Missing or invalid values mean -1 (let the library use all cores).
func NumThreadsFromEnv() int {
	cpus := os.Getenv("SLURM_CPUS_PER_TASK")
	if cpus == "" {
		return -1
	}
	n, err := strconv.Atoi(cpus)
	if err != nil {
		return -1
	}
	return n
}

// AutoScalePosWeight derives the class-imbalance weight from the train
// split's label counts.
func AutoScalePosWeight(trainPos, trainNeg int) float64 {
	if trainPos < 1 {
		trainPos = 1
	}
	return float64(trainNeg) / float64(trainPos)
}

// Design is the combined modeling table handed to the search driver: train
// rows followed by validation rows, with a discrete split marker
// distinguishing the two (-1 train, 0 validation). This mirrors a predefined
// split: the search never re-partitions rows.
type Design struct {
	X        *mat.Dense
	Y        []float64
	Marker   []int
	Features []string
	NumTrain int
	NumVal   int
}

// NewDesign concatenates the temporal train and validation frames over the
// given feature columns. Both frames must be non-empty: an out-of-range
// split window is a configuration error, not a degenerate search.
func NewDesign(train, val *dataset.Frame, features []string) (*Design, error) {
	if len(features) == 0 {
		return nil, errors.New("tuning: no feature columns selected")
	}
	nTrain := train.NumRows()
	nVal := val.NumRows()
	if nTrain == 0 || nVal == 0 {
		return nil, errors.Newf(
			"tuning: temporal split produced %d train and %d validation rows; both splits must be non-empty",
			nTrain, nVal)
	}

	xTrain := train.Matrix(features)
	xVal := val.Matrix(features)

	x := mat.NewDense(nTrain+nVal, len(features), nil)
	x.Slice(0, nTrain, 0, len(features)).(*mat.Dense).Copy(xTrain)
	x.Slice(nTrain, nTrain+nVal, 0, len(features)).(*mat.Dense).Copy(xVal)

	y := append(train.BinaryTarget(), val.BinaryTarget()...)

	marker := make([]int, nTrain+nVal)
	for i := 0; i < nTrain; i++ {
		marker[i] = -1
	}

	return &Design{
		X:        x,
		Y:        y,
		Marker:   marker,
		Features: features,
		NumTrain: nTrain,
		NumVal:   nVal,
	}, nil
}

func (d *Design) partition(markerValue int, n int) (*mat.Dense, []float64) {
	idx := make([]int, 0, n)
	for i, m := range d.Marker {
		if m == markerValue {
			idx = append(idx, i)
		}
	}
	x := mat.NewDense(len(idx), len(d.Features), nil)
	y := make([]float64, len(idx))
	for i, r := range idx {
		for j := range d.Features {
			x.Set(i, j, d.X.At(r, j))
		}
		y[i] = d.Y[r]
	}
	return x, y
}

// SearchConfig controls the randomized search.
type SearchConfig struct {
	// NumTrials is the number of parameter combinations to sample.
	NumTrials int
	// Seed drives both combination sampling and model training.
	Seed int
	// NumThreads is passed to the predictor (-1 = all cores).
	NumThreads int
	// ShowProgress renders a progress bar on stderr.
	ShowProgress bool
}

// Trial is one evaluated parameter combination.
type Trial struct {
	Index    int           `json:"index"`
	Params   Params        `json:"params"`
	ValScore float64       `json:"val_score"`
	NumTrees int           `json:"num_trees"`
	Duration time.Duration `json:"-"`
}

// SearchResult is the outcome of a randomized search.
type SearchResult struct {
	BestParams Params
	BestScore  float64
	BestTrial  int
	Trials     []Trial
	Duration   time.Duration
}

// RandomizedSearch samples cfg.NumTrials combinations from the grid, trains
// a boosted-tree model on the design's train partition for each, scores it
// on the validation partition with average precision (PR-AUC), and reports
// the best combination. When early_stopping_rounds is positive, each trial
// trains against the validation partition and stops once the validation
// loss plateaus, so the effective tree count per trial is data-driven
// rather than the n_estimators ceiling.
func RandomizedSearch(design *Design, grid *Grid, fixed Params, cfg SearchConfig) (*SearchResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, errors.Newf("tuning: NumTrials must be positive, got %d", cfg.NumTrials)
	}

	xTrain, yTrain := design.partition(-1, design.NumTrain)
	xVal, yVal := design.partition(0, design.NumVal)

	yTrainMat := mat.NewDense(len(yTrain), 1, yTrain)
	yValMat := mat.NewDense(len(yVal), 1, yVal)
	yValVec := mat.NewVecDense(len(yVal), yVal)

	rng := rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))

	var bar *progressbar.ProgressBar
	if cfg.ShowProgress {
		bar = progressbar.Default(int64(cfg.NumTrials), "tuning")
	}

	result := &SearchResult{BestScore: -1, BestTrial: -1}
	start := time.Now()

	for trial := 0; trial < cfg.NumTrials; trial++ {
		combo := grid.Sample(rng)
		params := trialParams(fixed, combo)

		trainer := lightgbm.NewTrainer(params)
		trainer.SetSampleWeight(positiveWeights(yTrain, scalePosWeight(combo)))

		trialStart := time.Now()
		var err error
		if params.EarlyStopping > 0 {
			valData := &lightgbm.ValidationData{X: xVal, Y: yValMat}
			err = trainer.FitWithValidation(xTrain, yTrainMat, valData)
		} else {
			err = trainer.Fit(xTrain, yTrainMat)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "tuning: trial %d fit", trial+1)
		}

		model := trainer.GetModel()
		predictor := lightgbm.NewPredictor(model)
		predictor.SetNumThreads(cfg.NumThreads)

		proba, err := predictor.PredictProba(xVal)
		if err != nil {
			return nil, errors.Wrapf(err, "tuning: trial %d predict", trial+1)
		}

		// Column 1 is the positive-class probability.
		n, _ := proba.Dims()
		scores := make([]float64, n)
		for i := 0; i < n; i++ {
			scores[i] = proba.At(i, 1)
		}

		valScore, err := metrics.AveragePrecision(yValVec, mat.NewVecDense(n, scores))
		if err != nil {
			return nil, errors.Wrapf(err, "tuning: trial %d score", trial+1)
		}

		result.Trials = append(result.Trials, Trial{
			Index:    trial + 1,
			Params:   combo,
			ValScore: valScore,
			NumTrees: model.NumIteration,
			Duration: time.Since(trialStart),
		})

		if valScore > result.BestScore {
			result.BestScore = valScore
			result.BestParams = combo
			result.BestTrial = trial + 1
		}

		slog.Debug("trial finished",
			log.TrialKey, trial+1,
			log.ScoreKey, valScore,
			log.BestScoreKey, result.BestScore,
			log.DurationSecKey, time.Since(trialStart).Seconds(),
		)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// scalePosWeight extracts the imbalance weight from a combination,
// defaulting to 1.
func scalePosWeight(p Params) float64 {
	if v, ok := asFloat(p["scale_pos_weight"]); ok {
		return v
	}
	return 1
}

// positiveWeights realizes scale_pos_weight as per-row training weights:
// positive rows carry the weight, negative rows carry 1.
func positiveWeights(y []float64, spw float64) []float64 {
	w := make([]float64, len(y))
	for i, v := range y {
		if v > 0 {
			w[i] = spw
		} else {
			w[i] = 1
		}
	}
	return w
}

// trialParams merges the fixed and sampled parameters into the trainer's
// native parameter set, using the Python-style names the grid and artifact
// carry. scale_pos_weight has no trainer-side counterpart and is realized
// through per-row sample weights; n_jobs applies to prediction only.
func trialParams(fixed, combo Params) lightgbm.TrainingParams {
	p := lightgbm.TrainingParams{
		Objective:     "binary",
		NumClass:      1,
		Metric:        "binary_logloss",
		MaxBin:        255,
		MinDataInBin:  3,
		Deterministic: true,
	}
	applyParams(&p, fixed)
	applyParams(&p, combo)
	return p
}

// applyParams maps Python-style parameter names onto trainer fields.
func applyParams(p *lightgbm.TrainingParams, set Params) {
	for name, value := range set {
		switch name {
		case "num_leaves":
			if v, ok := asInt(value); ok {
				p.NumLeaves = v
			}
		case "max_depth":
			if v, ok := asInt(value); ok {
				p.MaxDepth = v
			}
		case "learning_rate":
			if v, ok := asFloat(value); ok {
				p.LearningRate = v
			}
		case "min_child_samples":
			if v, ok := asInt(value); ok {
				p.MinDataInLeaf = v
			}
		case "subsample":
			if v, ok := asFloat(value); ok {
				p.BaggingFraction = v
			}
		case "colsample_bytree":
			if v, ok := asFloat(value); ok {
				p.FeatureFraction = v
			}
		case "reg_alpha":
			if v, ok := asFloat(value); ok {
				p.Alpha = v
			}
		case "reg_lambda":
			if v, ok := asFloat(value); ok {
				p.Lambda = v
			}
		case "n_estimators":
			if v, ok := asInt(value); ok {
				p.NumIterations = v
			}
		case "early_stopping_rounds":
			if v, ok := asInt(value); ok {
				p.EarlyStopping = v
			}
		case "random_state":
			if v, ok := asInt(value); ok {
				p.Seed = v
			}
		case "verbose":
			if v, ok := asInt(value); ok {
				p.Verbosity = v
			}
		case "objective":
			if v, ok := value.(string); ok {
				p.Objective = v
			}
		case "boosting_type":
			if v, ok := value.(string); ok {
				p.BoostingType = v
			}
		case "scale_pos_weight", "n_jobs":
			// Handled outside the trainer parameters.
		}
	}
}
