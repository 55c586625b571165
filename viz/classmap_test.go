package viz

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOneHot(t *testing.T) {
	bands := [][]uint8{
		{1, 0, 0, 0},
		{0, 1, 0, 1},
		{0, 0, 0, 1},
	}
	classes := FromOneHot(bands)
	// Pixel 2 has no class; pixel 3 has two, the lowest band wins.
	assert.Equal(t, []uint8{0, 1, NoClass, 1}, classes)
}

func TestClassMap(t *testing.T) {
	classes := []uint8{0, 1, NoClass, 6}
	img, err := ClassMap(classes, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, Palette[0], img.RGBAAt(0, 0))
	assert.Equal(t, Palette[1], img.RGBAAt(1, 0))
	assert.Equal(t, uint8(0), img.RGBAAt(0, 1).A, "unclassified pixels render transparent")
	assert.Equal(t, Palette[6], img.RGBAAt(1, 1))
}

func TestClassMapSizeMismatch(t *testing.T) {
	_, err := ClassMap([]uint8{0, 1}, 2, 2)
	assert.Error(t, err)
}

func TestSaveClassMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	classes := []uint8{0, 1, 2, 3}
	require.NoError(t, SaveClassMap(path, classes, 2, 2))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
}

func TestClassDistribution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.png")
	names := []string{"water", "trees", "grass"}
	shares := []float64{0.2, 0.5, 0.3}
	require.NoError(t, ClassDistribution(path, names, shares))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestClassDistributionMismatch(t *testing.T) {
	err := ClassDistribution(filepath.Join(t.TempDir(), "x.png"), []string{"a"}, []float64{1, 2})
	assert.Error(t, err)
}
