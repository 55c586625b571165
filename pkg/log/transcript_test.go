package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptTeesToFile(t *testing.T) {
	dir := t.TempDir()

	tr, err := NewTranscript(dir, "model1_tuning_lgbm")
	require.NoError(t, err)

	tr.Printf("Best val score (PR-AUC): %.4f\n", 0.8123)
	require.NoError(t, tr.Close())

	data, err := os.ReadFile(tr.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "0.8123")

	base := filepath.Base(tr.Path())
	assert.True(t, strings.HasPrefix(base, "model1_tuning_lgbm_"))
	assert.True(t, strings.HasSuffix(base, ".txt"))
}

func TestTranscriptCreatesResultsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs", "Results", "ml_models")

	tr, err := NewTranscript(dir, "run")
	require.NoError(t, err)
	defer tr.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestToLogLevelPanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { ToLogLevel("verbose") })
}
