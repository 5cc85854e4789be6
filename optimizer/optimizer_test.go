package optimizer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/door"
	"github.com/archfloor/doorplan/halfedge"
	"github.com/archfloor/doorplan/room"
)

// twoRooms builds a 2x1 rectangle split into two unit-square rooms by a
// single straight wall of length 1 at x=1 (vertices 1 and 4).
func twoRooms(t *testing.T) (*halfedge.Mesh, *room.Model) {
	t.Helper()
	points := []geom.Point{
		geom.NewPoint(0, 0), // 0
		geom.NewPoint(1, 0), // 1
		geom.NewPoint(2, 0), // 2
		geom.NewPoint(2, 1), // 3
		geom.NewPoint(1, 1), // 4
		geom.NewPoint(0, 1), // 5
	}
	triangles := [][3]int{
		{0, 1, 4}, {0, 4, 5},
		{1, 2, 3}, {1, 3, 4},
	}
	mesh, err := halfedge.NewMesh(points, triangles, [][2]int{{1, 4}})
	require.NoError(t, err)
	return mesh, room.NewModel(mesh)
}

func findWallEdge(t *testing.T, mesh *halfedge.Mesh, rooms *room.Model) int {
	t.Helper()
	for _, e := range rooms.SharedEdges(0, 1) {
		o, d := mesh.HalfEdge(e).Origin, mesh.To(e)
		if (o == 1 && d == 4) || (o == 4 && d == 1) {
			return e
		}
	}
	t.Fatal("no wall edge found between rooms 0/1")
	return -1
}

func TestMinimalSingleDoorConverges(t *testing.T) {
	mesh, rooms := twoRooms(t)
	sys := door.NewSystem(mesh, rooms)

	d := door.NewDoor(0, 1, 0.07)
	d.BindEdge = findWallEdge(t, mesh, rooms)
	d.Ratio = 0.5
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	// A straight line from (0.2, 0.9) to (1.8, 0.2) crosses the wall
	// (x=1) at y=0.55, so the door should drift toward that ratio.
	samples := []geom.Point{
		geom.NewPoint(0.2, 0.9),
		geom.NewPoint(1.8, 0.2),
	}

	rng := rand.New(rand.NewSource(0))
	opt := New(mesh, sys, samples, 0.01, 0.05, rng)
	opt.Init()
	initialBest := opt.BestScore()

	require.NoError(t, opt.Run(200))

	assert.LessOrEqual(t, opt.BestScore(), initialBest)
	assert.InDelta(t, 0.55, d.Ratio, 0.25)
}

func TestObjectiveFiniteWhenDoorConnectsRooms(t *testing.T) {
	mesh, rooms := twoRooms(t)
	sys := door.NewSystem(mesh, rooms)

	d := door.NewDoor(0, 1, 0.07)
	d.BindEdge = findWallEdge(t, mesh, rooms)
	d.Ratio = 0.5
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	samples := []geom.Point{
		geom.NewPoint(0.2, 0.9),
		geom.NewPoint(1.8, 0.2),
		geom.NewPoint(0.1, 0.1),
	}

	score := Objective(mesh, sys, sys.Doors(), samples)
	assert.False(t, score < 0)
	assert.Less(t, score, 1e9)
}

func TestSamplePointsOnlyInsideMesh(t *testing.T) {
	mesh, _ := twoRooms(t)
	rng := rand.New(rand.NewSource(1))

	points := SamplePoints(mesh, 50, rng)
	require.Len(t, points, 50)
	for _, p := range points {
		assert.GreaterOrEqual(t, p.X(), 0.0)
		assert.LessOrEqual(t, p.X(), 2.0)
		assert.GreaterOrEqual(t, p.Y(), 0.0)
		assert.LessOrEqual(t, p.Y(), 1.0)
	}
}
