package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[optimizer]
random_seed = 0
sample_size = 300
iterations  = 2000
temperature = 0.05
sigma       = 0.05

[[cases]]
file_name = "case-0"
obj_path  = "assets/fp_w_walls_0.obj"
doors     = [[0, 1, 0.07], [1, 2]]
front_door = [12, 0.5]
`

func writeSample(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "case.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	return path
}

func TestLoadParsesOptimizerAndCases(t *testing.T) {
	cfg, err := Load(writeSample(t))
	require.NoError(t, err)

	assert.Equal(t, int64(0), cfg.Optimizer.RandomSeed)
	assert.Equal(t, 300, cfg.Optimizer.SampleSize)
	assert.Equal(t, 2000, cfg.Optimizer.Iterations)
	assert.InDelta(t, 0.05, cfg.Optimizer.Temperature, 1e-9)
	assert.InDelta(t, 0.05, cfg.Optimizer.Sigma, 1e-9)

	require.Len(t, cfg.Cases, 1)
	c := cfg.Cases[0]
	assert.Equal(t, "case-0", c.FileName)
	assert.Equal(t, "assets/fp_w_walls_0.obj", c.ObjPath)
	assert.Equal(t, 12, c.FrontDoorEdge())
	assert.InDelta(t, 0.5, c.FrontDoorRatio(), 1e-9)
}

func TestResolveDoorsAppliesDefaultLength(t *testing.T) {
	cfg, err := Load(writeSample(t))
	require.NoError(t, err)

	doors, err := cfg.Cases[0].ResolveDoors()
	require.NoError(t, err)
	require.Len(t, doors, 2)

	assert.Equal(t, Door{RoomA: 0, RoomB: 1, Length: 0.07}, doors[0])
	assert.Equal(t, Door{RoomA: 1, RoomB: 2, Length: defaultLength}, doors[1])
}

func TestResolveDoorsRejectsMalformedEntry(t *testing.T) {
	c := Case{Doors: [][]float64{{0}}}
	_, err := c.ResolveDoors()
	assert.ErrorIs(t, err, ErrInvalidDoor)
}
