package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeRoomObj is a 3x1 rectangle split into three unit rooms (A, B, C)
// by two interior walls at x=1 and x=2 (OBJ vertices 2-7 and 3-6). Given
// halfedge.NewMesh's deterministic id assignment (three half-edges per
// triangle, in triangle order), the A/B wall is half-edge id 1 and the
// B/C wall is half-edge id 7 — the config below pins the front door to
// the former and leaves the regular door to auto-pick the latter.
const threeRoomObj = `
v 0 0 0
v 1 0 0
v 2 0 0
v 3 0 0
v 3 1 0
v 2 1 0
v 1 1 0
v 0 1 0
l 2 7
l 3 6
f 1 2 7
f 1 7 8
f 2 3 6
f 2 6 7
f 3 4 5
f 3 5 6
`

func writeCaseFiles(t *testing.T) (configPath, outPath string) {
	t.Helper()
	dir := t.TempDir()

	objPath := filepath.Join(dir, "plan.obj")
	require.NoError(t, os.WriteFile(objPath, []byte(threeRoomObj), 0o644))

	cfgText := `
[optimizer]
random_seed = 1
sample_size = 20
iterations  = 10
temperature = 0.05
sigma       = 0.05

[[cases]]
file_name  = "case-0"
obj_path   = "` + filepath.ToSlash(objPath) + `"
doors      = [[1, 2]]
front_door = [1, 0.5]
`
	cfgPath := filepath.Join(dir, "case.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgText), 0o644))

	return cfgPath, filepath.Join(dir, "out.obj")
}

func TestRunCaseWritesOptimizedPlan(t *testing.T) {
	cfgPath, outPath := writeCaseFiles(t)

	require.NoError(t, runCase(cfgPath, "case-0", outPath))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "v "))
	assert.Contains(t, out, "g room-")
}

func TestRunCaseDefaultsToFirstCase(t *testing.T) {
	cfgPath, outPath := writeCaseFiles(t)
	require.NoError(t, runCase(cfgPath, "", outPath))
	_, err := os.Stat(outPath)
	require.NoError(t, err)
}

func TestRunCaseRejectsUnknownCaseName(t *testing.T) {
	cfgPath, outPath := writeCaseFiles(t)
	err := runCase(cfgPath, "does-not-exist", outPath)
	assert.Error(t, err)
}
