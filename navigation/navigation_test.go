package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
)

// strip builds a 4x1 rectangular corridor of four unit-square cells
// (8 triangles) with no interior walls, so a path from one end to the
// other should be a straight line.
func strip(t *testing.T) *halfedge.Mesh {
	t.Helper()
	points := make([]geom.Point, 0, 10)
	for x := 0; x <= 4; x++ {
		points = append(points, geom.NewPoint(float64(x), 0), geom.NewPoint(float64(x), 1))
	}

	var triangles [][3]int
	for x := 0; x < 4; x++ {
		bl, tl := 2*x, 2*x+1
		br, tr := 2*(x+1), 2*(x+1)+1
		triangles = append(triangles, [3]int{bl, br, tr}, [3]int{bl, tr, tl})
	}

	mesh, err := halfedge.NewMesh(points, triangles, nil)
	require.NoError(t, err)
	return mesh
}

func TestFindPathStraightCorridor(t *testing.T) {
	mesh := strip(t)
	start := geom.NewPoint(0.1, 0.5)
	end := geom.NewPoint(3.9, 0.5)

	path, err := FindPath(mesh, start, end)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	assert.InDelta(t, 3.8, PathLength(path), 1e-9)
}

func TestFindPathSameTriangle(t *testing.T) {
	mesh := strip(t)
	start := geom.NewPoint(0.1, 0.1)
	end := geom.NewPoint(0.2, 0.2)

	path, err := FindPath(mesh, start, end)
	require.NoError(t, err)
	assert.Equal(t, []geom.Point{start, end}, path)
}

func TestFindPathOutsideMesh(t *testing.T) {
	mesh := strip(t)
	_, err := FindPath(mesh, geom.NewPoint(-1, -1), geom.NewPoint(0.5, 0.5))
	assert.ErrorIs(t, err, ErrNoFace)
}

func TestFindPathBlockedWallHasNoPath(t *testing.T) {
	mesh := strip(t)

	// Block the entire shared wall between the first and second column of
	// cells, except leave nothing open: path must fail.
	for e := 0; e < mesh.NumHalfEdges(); e++ {
		h := mesh.HalfEdge(e)
		if h.IsBoundary() {
			continue
		}
		a, b := mesh.Vertex(h.Origin).Point, mesh.Vertex(mesh.To(e)).Point
		if a.X() == 1 && b.X() == 1 {
			h.IsBlocked = true
			mesh.HalfEdge(h.Twin).IsBlocked = true
		}
	}

	_, err := FindPath(mesh, geom.NewPoint(0.1, 0.5), geom.NewPoint(3.9, 0.5))
	assert.ErrorIs(t, err, ErrNoPath)
}

// lCorridor builds an L-shaped corridor: a horizontal run of three unit
// squares at y in [0,1], x in [0,3], joined at its right end to a
// vertical run of two unit squares at x in [2,3], y in [1,3]. The inner
// corner at (2,1) is a reflex vertex a straight line from the horizontal
// leg to the vertical leg must bend around.
func lCorridor(t *testing.T) *halfedge.Mesh {
	t.Helper()
	points := []geom.Point{
		geom.NewPoint(0, 0), // 0 A
		geom.NewPoint(1, 0), // 1 B
		geom.NewPoint(1, 1), // 2 C
		geom.NewPoint(0, 1), // 3 D
		geom.NewPoint(2, 0), // 4 E
		geom.NewPoint(2, 1), // 5 F (reflex corner)
		geom.NewPoint(3, 0), // 6 G
		geom.NewPoint(3, 1), // 7 H
		geom.NewPoint(3, 2), // 8 I
		geom.NewPoint(2, 2), // 9 J
		geom.NewPoint(3, 3), // 10 K
		geom.NewPoint(2, 3), // 11 L
	}
	triangles := [][3]int{
		{0, 1, 2}, {0, 2, 3},
		{1, 4, 5}, {1, 5, 2},
		{4, 6, 7}, {4, 7, 5},
		{5, 7, 8}, {5, 8, 9},
		{9, 8, 10}, {9, 10, 11},
	}

	mesh, err := halfedge.NewMesh(points, triangles, nil)
	require.NoError(t, err)
	return mesh
}

func TestFindPathLShapedCorridorBendsAtReflexVertex(t *testing.T) {
	mesh := lCorridor(t)
	start := geom.NewPoint(0.1, 0.5)
	end := geom.NewPoint(2.5, 2.9)

	path, err := FindPath(mesh, start, end)
	require.NoError(t, err)

	require.Len(t, path, 3)
	assert.Equal(t, start, path[0])
	assert.Equal(t, geom.NewPoint(2, 1), path[1])
	assert.Equal(t, end, path[2])
}

func TestTriangleAStarSameFace(t *testing.T) {
	mesh := strip(t)
	path, err := TriangleAStar(mesh, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, path)
}
