package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
)

// twoRooms builds a 2x1 rectangle split into two unit-square rooms by a
// shared interior wall at x=1, each square triangulated along its own
// diagonal. Vertices: 0(0,0) 1(1,0) 2(2,0) 3(2,1) 4(1,1) 5(0,1).
func twoRooms(t *testing.T) *halfedge.Mesh {
	t.Helper()
	points := []geom.Point{
		geom.NewPoint(0, 0),
		geom.NewPoint(1, 0),
		geom.NewPoint(2, 0),
		geom.NewPoint(2, 1),
		geom.NewPoint(1, 1),
		geom.NewPoint(0, 1),
	}
	triangles := [][3]int{
		{0, 1, 4}, {0, 4, 5}, // left room
		{1, 2, 3}, {1, 3, 4}, // right room
	}
	mesh, err := halfedge.NewMesh(points, triangles, [][2]int{{1, 4}})
	require.NoError(t, err)
	return mesh
}

func TestRecomputeFindsTwoRooms(t *testing.T) {
	mesh := twoRooms(t)
	model := NewModel(mesh)

	require.Len(t, model.Rooms(), 2)
	assert.Len(t, model.Room(0).Faces, 2)
	assert.Len(t, model.Room(1).Faces, 2)

	shared := model.SharedEdges(0, 1)
	assert.Len(t, shared, 2) // the wall half-edge and its twin
}

func TestRecomputeMergesRoomsWhenWallOpens(t *testing.T) {
	mesh := twoRooms(t)
	model := NewModel(mesh)

	shared := model.SharedEdges(0, 1)
	require.NotEmpty(t, shared)
	for _, e := range shared {
		mesh.HalfEdge(e).IsBlocked = false
	}

	model.Recompute()
	require.Len(t, model.Rooms(), 1)
	assert.Len(t, model.Room(0).Faces, 4)
}
