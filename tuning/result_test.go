package tuning

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBestResultRoundTrip(t *testing.T) {
	grid := DefaultLGBMGrid()
	grid.ExtendScalePosWeight(137.42)

	r := &BestResult{
		BestParams: Params{
			"num_leaves":       int32(63),
			"learning_rate":    0.05,
			"scale_pos_weight": 137.42,
		},
		BestValScore:      0.8123,
		ParamGrid:         grid.Map(),
		FixedParams:       FixedLGBMParams(42, -1),
		NumIter:           50,
		Scoring:           Scoring,
		TuningTimeSeconds: 12.5,
		SplitInfo:         NewSplitInfo(2014, 2015, 2017, 1000, 400, 137.42),
	}

	path := filepath.Join(t.TempDir(), "lgbm_best_params.json")
	require.NoError(t, WriteBestResult(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		BestParams   map[string]any `json:"best_params"`
		BestValScore float64        `json:"best_val_score"`
		NumIter      int            `json:"n_iter"`
		Scoring      string         `json:"scoring"`
		SplitInfo    SplitInfo      `json:"split_info"`
	}
	require.NoError(t, json.Unmarshal(data, &parsed))

	// The parsed artifact reproduces the reported best parameters and score.
	assert.Equal(t, 0.8123, parsed.BestValScore)
	assert.Equal(t, float64(63), parsed.BestParams["num_leaves"])
	assert.Equal(t, 0.05, parsed.BestParams["learning_rate"])
	assert.Equal(t, 137.42, parsed.BestParams["scale_pos_weight"])
	assert.Equal(t, 50, parsed.NumIter)
	assert.Equal(t, "average_precision", parsed.Scoring)
	assert.Equal(t, "year <= 2014", parsed.SplitInfo.TrainYears)
	assert.Equal(t, "2015 <= year <= 2017", parsed.SplitInfo.ValYears)
	assert.Equal(t, 1000, parsed.SplitInfo.NumTrain)
}

func TestWriteBestResultOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lgbm_best_params.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	r := &BestResult{
		BestParams: Params{"num_leaves": 31},
		Scoring:    Scoring,
	}
	require.NoError(t, WriteBestResult(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.True(t, json.Valid(data))
}
