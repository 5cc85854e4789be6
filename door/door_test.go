package door

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
	"github.com/archfloor/doorplan/room"
)

// splitWall builds two 1x2 rooms side by side, split at x=1 by a wall made
// of two collinear segments {1,2} and {2,5} meeting at (1,1), so a door
// bound to one segment has somewhere to edge-hop onto.
//
//	4 --- 5 --- 6
//	|  L  |  R  |
//	3 --- 2 --- 7
//	|  L  |  R  |
//	0 --- 1 --- 8
func splitWall(t *testing.T) (*halfedge.Mesh, *room.Model) {
	t.Helper()
	points := []geom.Point{
		geom.NewPoint(0, 0), // 0
		geom.NewPoint(1, 0), // 1
		geom.NewPoint(1, 1), // 2
		geom.NewPoint(0, 1), // 3
		geom.NewPoint(0, 2), // 4
		geom.NewPoint(1, 2), // 5
		geom.NewPoint(2, 2), // 6
		geom.NewPoint(2, 1), // 7
		geom.NewPoint(2, 0), // 8
	}
	triangles := [][3]int{
		{0, 1, 2}, {0, 2, 3}, // left lower
		{3, 2, 5}, {3, 5, 4}, // left upper
		{1, 8, 7}, {1, 7, 2}, // right lower
		{2, 7, 6}, {2, 6, 5}, // right upper
	}
	mesh, err := halfedge.NewMesh(points, triangles, [][2]int{{1, 2}, {2, 5}})
	require.NoError(t, err)
	return mesh, room.NewModel(mesh)
}

// findSharedEdge returns the id, among rooms.SharedEdges(a, b), of the
// half-edge running origin->to (in either direction).
func findSharedEdge(t *testing.T, mesh *halfedge.Mesh, rooms *room.Model, a, b, origin, to int) int {
	t.Helper()
	for _, e := range rooms.SharedEdges(a, b) {
		o, d := mesh.HalfEdge(e).Origin, mesh.To(e)
		if (o == origin && d == to) || (o == to && d == origin) {
			return e
		}
	}
	t.Fatalf("no shared edge between rooms %d/%d for vertices %d,%d", a, b, origin, to)
	return -1
}

func newTestDoor(t *testing.T, mesh *halfedge.Mesh, rooms *room.Model, edge int, ratio float64) *Door {
	t.Helper()
	d := NewDoor(0, 1, defaultLength)
	d.BindEdge = edge
	d.Ratio = ratio
	return d
}

func TestActivateDeactivateRoundTrip(t *testing.T) {
	mesh, rooms := splitWall(t)
	sys := NewSystem(mesh, rooms)

	nv, nh, nf := mesh.NumVertices(), mesh.NumHalfEdges(), mesh.NumFaces()

	edge := findSharedEdge(t, mesh, rooms, 0, 1, 1, 2)
	d := newTestDoor(t, mesh, rooms, edge, 0.5)
	sys.Add(d)

	require.NoError(t, sys.Activate(d))
	assert.True(t, d.Active)
	assert.Equal(t, nv+2, mesh.NumVertices())
	assert.Equal(t, nh+12, mesh.NumHalfEdges())
	assert.Equal(t, nf+4, mesh.NumFaces())

	for _, v := range d.Vertices {
		assert.Len(t, mesh.VertexEdges(v), 8)
	}

	require.NoError(t, sys.Deactivate(d))
	assert.False(t, d.Active)

	// The arenas are append-only, so ids never shrink back; the live
	// (non-tombstoned) counts do.
	liveVertices, liveHalfEdges, liveFaces := 0, 0, 0
	for i := 0; i < mesh.NumVertices(); i++ {
		if !mesh.VertexRemoved(i) {
			liveVertices++
		}
	}
	for i := 0; i < mesh.NumHalfEdges(); i++ {
		if !mesh.HalfEdgeRemoved(i) {
			liveHalfEdges++
		}
	}
	for i := 0; i < mesh.NumFaces(); i++ {
		if !mesh.FaceRemoved(i) {
			liveFaces++
		}
	}
	assert.Equal(t, nv, liveVertices)
	assert.Equal(t, nh, liveHalfEdges)
	assert.Equal(t, nf, liveFaces)
}

func TestStepWithinLimitsSlides(t *testing.T) {
	mesh, rooms := splitWall(t)
	sys := NewSystem(mesh, rooms)

	edge := findSharedEdge(t, mesh, rooms, 0, 1, 1, 2)
	d := newTestDoor(t, mesh, rooms, edge, 0.5)
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	before := append([]int{}, d.Vertices...)
	require.NoError(t, sys.Step(d, 0.1))

	assert.True(t, d.Active)
	assert.InDelta(t, 0.6, d.Ratio, 1e-9)
	assert.Equal(t, before, d.Vertices) // slide keeps topology, only moves points
	assert.Equal(t, edge, d.BindEdge)
}

func TestStepAtLimitHopsToNextEdge(t *testing.T) {
	mesh, rooms := splitWall(t)
	sys := NewSystem(mesh, rooms)

	lower := findSharedEdge(t, mesh, rooms, 0, 1, 1, 2)
	upper := findSharedEdge(t, mesh, rooms, 0, 1, 2, 5)

	d := newTestDoor(t, mesh, rooms, lower, 0.5)
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	// Push the door past its upper ratio limit on a unit-length edge; it
	// should hop across the shared vertex (1,1) onto the other wall
	// segment rather than error.
	require.NoError(t, sys.Step(d, 0.9))

	assert.True(t, d.Active)
	assert.Contains(t, []int{upper, mesh.HalfEdge(upper).Twin}, d.BindEdge)
}

func TestStepAtDoorLowerLimitDoesNotHopWithoutCrossing(t *testing.T) {
	mesh, rooms := splitWall(t)
	sys := NewSystem(mesh, rooms)

	edge := findSharedEdge(t, mesh, rooms, 0, 1, 1, 2)
	d := newTestDoor(t, mesh, rooms, edge, 0.5)
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	lower, upper := d.moveLimits()
	require.NoError(t, sys.Step(d, (lower-d.Ratio)*d.eLen+1e-6))

	assert.Equal(t, edge, d.BindEdge)
	assert.True(t, d.Ratio >= lower && d.Ratio <= upper)
}

func TestRejectRestoresRatioOnSameEdge(t *testing.T) {
	mesh, rooms := splitWall(t)
	sys := NewSystem(mesh, rooms)

	edge := findSharedEdge(t, mesh, rooms, 0, 1, 1, 2)
	d := newTestDoor(t, mesh, rooms, edge, 0.5)
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	require.NoError(t, sys.Step(d, 0.1))
	assert.InDelta(t, 0.6, d.Ratio, 1e-9)

	// Reject: since the bind edge is unchanged, rolling back is a pure
	// Move to the snapshotted ratio, no topology change.
	snap := d.history
	require.Equal(t, edge, snap.bindEdge)
	sys.Move(d, snap.ratio)

	assert.InDelta(t, 0.5, d.Ratio, 1e-9)
	assert.Equal(t, edge, d.BindEdge)
}

func TestAssignSplitFacesToRoomsKeepsFacesOnTheirOwnSide(t *testing.T) {
	mesh, rooms := splitWall(t)
	sys := NewSystem(mesh, rooms)

	edge := findSharedEdge(t, mesh, rooms, 0, 1, 1, 2)
	d := newTestDoor(t, mesh, rooms, edge, 0.5)
	sys.Add(d)
	require.NoError(t, sys.Activate(d))

	for _, f := range d.Faces {
		room := rooms.RoomOf(f)
		assert.Contains(t, []int{0, 1}, room)
	}
	roomOfFaces := make(map[int]bool)
	for _, f := range d.Faces {
		roomOfFaces[rooms.RoomOf(f)] = true
	}
	assert.Len(t, roomOfFaces, 2, "the four new faces should split across both rooms")
}
