package tuning

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// Scoring is the trial-selection metric. PR-AUC ranks better than accuracy
// on a label this imbalanced.
const Scoring = "average_precision"

// SplitInfo records the temporal split provenance in the artifact.
type SplitInfo struct {
	TrainYears         string  `json:"train_years"`
	ValYears           string  `json:"val_years"`
	NumTrain           int     `json:"n_train"`
	NumVal             int     `json:"n_val"`
	AutoScalePosWeight float64 `json:"auto_scale_pos_weight"`
}

// NewSplitInfo formats the split windows the way the run summary prints them.
func NewSplitInfo(trainYearMax, valYearMin, valYearMax, nTrain, nVal int, autoSPW float64) SplitInfo {
	return SplitInfo{
		TrainYears:         fmt.Sprintf("year <= %d", trainYearMax),
		ValYears:           fmt.Sprintf("%d <= year <= %d", valYearMin, valYearMax),
		NumTrain:           nTrain,
		NumVal:             nVal,
		AutoScalePosWeight: autoSPW,
	}
}

// BestResult is the tuning artifact: the single best parameter combination,
// its validation score, and enough provenance to reproduce the search.
// Written once at the end of a run and never mutated afterwards.
type BestResult struct {
	BestParams        Params           `json:"best_params"`
	BestValScore      float64          `json:"best_val_score"`
	ParamGrid         map[string][]any `json:"param_grid"`
	FixedParams       Params           `json:"fixed_params"`
	NumIter           int              `json:"n_iter"`
	Scoring           string           `json:"scoring"`
	TuningTimeSeconds float64          `json:"tuning_time_seconds"`
	SplitInfo         SplitInfo        `json:"split_info"`
}

// WriteBestResult serializes the artifact to path, overwriting any previous
// file. All parameter values pass through Coerce first so the document holds
// only plain numbers, strings, booleans, mappings and sequences. The write
// is all-or-nothing: an I/O failure propagates and terminates the run.
func WriteBestResult(path string, r *BestResult) error {
	doc := map[string]any{
		"best_params":         Coerce(r.BestParams),
		"best_val_score":      r.BestValScore,
		"param_grid":          Coerce(r.ParamGrid),
		"fixed_params":        Coerce(r.FixedParams),
		"n_iter":              r.NumIter,
		"scoring":             r.Scoring,
		"tuning_time_seconds": r.TuningTimeSeconds,
		"split_info":          r.SplitInfo,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "tuning: marshal best result")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "tuning: write %s", path)
	}
	return nil
}
