package door

import (
	"errors"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
	"github.com/archfloor/doorplan/room"
)

var (
	// ErrAlreadyActive is returned by Activate on a door that is already bound.
	ErrAlreadyActive = errors.New("door: already active")
	// ErrNotActive is returned by operations that require an active door.
	ErrNotActive = errors.New("door: not active")
	// ErrNoSharedEdge is returned when the door's two rooms share no wall to bind to.
	ErrNoSharedEdge = errors.New("door: rooms share no wall edge")
	// ErrStructural is returned when deactivation cannot reach a consistent
	// 8-incident-edge state even after cascading temporary deactivations.
	ErrStructural = errors.New("door: cannot deactivate without breaking mesh invariants")
)

// System owns every door of a floor plan and mediates their activation
// against the shared mesh and room model.
type System struct {
	mesh  *halfedge.Mesh
	rooms *room.Model
	doors []*Door
}

// NewSystem constructs a door system bound to a mesh and its room model.
func NewSystem(mesh *halfedge.Mesh, rooms *room.Model) *System {
	return &System{mesh: mesh, rooms: rooms}
}

// Add registers a door with the system, to be activated later.
func (s *System) Add(d *Door) {
	s.doors = append(s.doors, d)
}

// Doors returns every registered door.
func (s *System) Doors() []*Door { return s.doors }

// Position returns the world-space point a door currently sits at along
// its bound edge, grounded on s_door_system.py's ratio_to_xy.
func (s *System) Position(d *Door) geom.Point {
	return ratioToPos(s.mesh, d.BindEdge, d.Ratio, d.eLen)
}

func ratioToPos(mesh *halfedge.Mesh, edge int, ratio, eLen float64) geom.Point {
	origin := mesh.Vertex(mesh.HalfEdge(edge).Origin).Point
	dir := direction(mesh, edge)
	return origin.Add(dir.MulScalar(ratio * eLen))
}

func direction(mesh *halfedge.Mesh, edge int) geom.Point {
	origin := mesh.Vertex(mesh.HalfEdge(edge).Origin).Point
	to := mesh.Vertex(mesh.To(edge)).Point
	d := to.Sub(origin)
	length := d.Mag()
	if length == 0 {
		return d
	}
	return d.MulScalar(1 / length)
}

func edgeLength(mesh *halfedge.Mesh, edge int) float64 {
	origin := mesh.Vertex(mesh.HalfEdge(edge).Origin).Point
	to := mesh.Vertex(mesh.To(edge)).Point
	return origin.Dist(to)
}

// cutPoints returns (farther, nearer): the two cut positions around
// ratio along edge, offset by (d_len/2)*0.95 in each direction, ordered
// so the farther-from-origin one is split first (original_source
// s_door_system.py's _cut_at: cut_p0 = center+offset, cut_p1 =
// center-offset, offset along the edge's Origin->To direction).
func cutPoints(mesh *halfedge.Mesh, edge int, ratio, length, eLen float64) (geom.Point, geom.Point) {
	dir := direction(mesh, edge)
	center := ratioToPos(mesh, edge, ratio, eLen)
	offset := dir.MulScalar(length / 2 * 0.95)
	return center.Add(offset), center.Sub(offset)
}

// ActivateAll activates every registered, inactive door, grounded on
// s_door_system.py's activate_all.
func (s *System) ActivateAll() error {
	for _, d := range s.doors {
		if d.Active {
			continue
		}
		if err := s.Activate(d); err != nil {
			return err
		}
	}
	return nil
}

// Activate binds d to a shared edge (picking the first by id if unbound)
// and splits it into a passable gap, reassigning the four new faces to
// the two rooms, grounded on s_door_system.py's activate.
func (s *System) Activate(d *Door) error {
	if d.Active {
		return ErrAlreadyActive
	}

	pinned := d.RoomA < 0 || d.RoomB < 0
	if !pinned {
		shared := s.rooms.SharedEdges(d.RoomA, d.RoomB)
		if len(shared) == 0 && d.BindEdge < 0 {
			return ErrNoSharedEdge
		}
		if d.BindEdge < 0 {
			d.BindEdge = minID(shared)
		}
	} else if d.BindEdge < 0 {
		return ErrNoSharedEdge
	}

	d.visited = make(map[int]bool)
	d.eLen = edgeLength(s.mesh, d.BindEdge)

	far, near := cutPoints(s.mesh, d.BindEdge, d.Ratio, d.Length, d.eLen)

	v0, _, faces0, err := s.mesh.SplitHalfEdge(d.BindEdge, far)
	if err != nil {
		return err
	}
	v1, edges1, faces1, err := s.mesh.SplitHalfEdge(d.BindEdge, near)
	if err != nil {
		return err
	}

	d.Vertices = []int{v0, v1}
	d.Faces = append(append([]int{}, faces0[:]...), faces1[:]...)

	// A pinned front door has no room pair to assign by: each new face
	// already inherited its room from the face it was split from
	// (SplitHalfEdge copies Face.Room), so it only needs registering in
	// that room's Faces set.
	if pinned {
		for _, f := range d.Faces {
			s.rooms.AddFace(f, s.mesh.Face(f).Room)
		}
	} else {
		assignSplitFacesToRooms(s.mesh, s.rooms, d.RoomA, d.RoomB, faces0[0], faces0[1])
		assignSplitFacesToRooms(s.mesh, s.rooms, d.RoomA, d.RoomB, faces1[0], faces1[1])
	}

	// The gap lies between v1 and v0: the half-edge pair created by the
	// second split connecting the new vertex to the (already cut) far
	// endpoint, i.e. edges1[0]/edges1[1].
	s.mesh.HalfEdge(edges1[0]).IsBlocked = false
	s.mesh.HalfEdge(edges1[1]).IsBlocked = false

	d.Active = true
	s.rooms.RefreshWalls()
	s.mesh.RebuildLocator()
	return nil
}

// assignSplitFacesToRooms mirrors s_door_system.py's
// add_two_face_to_rooms: look at f0's non-f1 neighbor across a passable
// edge; if that neighbor already belongs to roomA, f0 joins roomA and f1
// joins roomB; otherwise the pair is assigned the other way around.
func assignSplitFacesToRooms(mesh *halfedge.Mesh, rooms *room.Model, roomA, roomB, f0, f1 int) {
	for _, adj := range mesh.FaceNeighbors(f0) {
		if adj == f1 {
			continue
		}
		shared := mesh.SharedEdges(f0, adj)
		if len(shared) == 0 || mesh.HalfEdge(shared[0]).IsBlocked {
			continue
		}
		if rooms.RoomOf(adj) == roomA {
			rooms.AddFace(f0, roomA)
			rooms.AddFace(f1, roomB)
			return
		}
	}
	rooms.AddFace(f1, roomA)
	rooms.AddFace(f0, roomB)
}

func minID(ids []int) int {
	min := ids[0]
	for _, id := range ids[1:] {
		if id < min {
			min = id
		}
	}
	return min
}

// Deactivate removes the gap d introduced, cascading a temporary
// deactivation of any other active door whose geometry now entangles
// one of d's vertices, then reactivating those doors once d is clear.
func (s *System) Deactivate(d *Door) error {
	if !d.Active {
		return nil
	}

	var reactivate []*Door

restart:
	for _, v := range d.Vertices {
		if len(s.mesh.VertexEdges(v)) != 8 {
			other := s.findEntangledDoor(d, v)
			if other == nil {
				return ErrStructural
			}
			if err := s.Deactivate(other); err != nil {
				return err
			}
			reactivate = append(reactivate, other)
			goto restart
		}
	}

	last := d.Vertices[len(d.Vertices)-1]
	first := d.Vertices[0]

	if _, _, err := s.mesh.RemoveVertex(last); err != nil {
		return err
	}
	if _, _, err := s.mesh.RemoveVertex(first); err != nil {
		return err
	}

	s.rooms.RemoveFaces(d.Faces)

	d.Vertices = nil
	d.Faces = nil
	d.Active = false

	s.rooms.RefreshWalls()
	s.mesh.RebuildLocator()

	for i := len(reactivate) - 1; i >= 0; i-- {
		if err := s.Activate(reactivate[i]); err != nil {
			return err
		}
	}

	return nil
}

// findEntangledDoor locates another active door whose own inserted
// vertices are incident to v (i.e. one of v's current half-edges
// terminates at that door's vertex), the structural signal
// s_door_system.py's deactivate tests via raw incident-edge counts.
func (s *System) findEntangledDoor(d *Door, v int) *Door {
	incident := make(map[int]bool)
	for _, e := range s.mesh.VertexEdges(v) {
		incident[s.mesh.HalfEdge(e).Origin] = true
		incident[s.mesh.To(e)] = true
	}

	for _, other := range s.doors {
		if other == d || !other.Active {
			continue
		}
		for _, ov := range other.Vertices {
			if incident[ov] {
				return other
			}
		}
	}
	return nil
}

// Step proposes a slide by delta (a signed distance along the bound
// edge's direction) and snapshots history before mutating, grounded on
// s_door_system.py's step/_move_by/_to_next_edge.
func (s *System) Step(d *Door, delta float64) error {
	if !d.Active {
		return ErrNotActive
	}

	d.history = snapshot{bindEdge: d.BindEdge, ratio: d.Ratio}

	ratio := d.Ratio + delta/d.eLen
	lower, upper := d.moveLimits()

	if ratio >= lower && ratio <= upper {
		dir := direction(s.mesh, d.BindEdge)
		translate := dir.MulScalar(delta)
		for _, v := range d.Vertices {
			vertex := s.mesh.Vertex(v)
			vertex.Point = vertex.Point.Add(translate)
		}
		d.Ratio = ratio
		s.mesh.RebuildLocator()
		return nil
	}

	return s.hop(d, ratio)
}

// Move sets d to a specific ratio on its current edge by repositioning
// both of its inserted vertices, without touching topology.
func (s *System) Move(d *Door, ratio float64) {
	if !d.Active {
		return
	}
	far, near := cutPoints(s.mesh, d.BindEdge, ratio, d.Length, d.eLen)
	s.mesh.Vertex(d.Vertices[0]).Point = far
	s.mesh.Vertex(d.Vertices[1]).Point = near
	d.Ratio = ratio
	s.mesh.RebuildLocator()
}

// hop deactivates d, rebinds it to a neighboring shared edge touching
// the vertex the step crossed and reactivates there; if no shared edge
// qualifies, d is reactivated unmoved at its pre-step edge and ratio.
// Grounded on s_door_system.py's _to_next_edge/_find_next_edge.
func (s *System) hop(d *Door, ratio float64) error {
	lower, upper := d.moveLimits()
	oldEdge := d.BindEdge
	oldTwin := s.mesh.HalfEdge(oldEdge).Twin

	if err := s.Deactivate(d); err != nil {
		return err
	}

	shared := s.rooms.SharedEdges(d.RoomA, d.RoomB)

	if ratio >= upper {
		crossed := s.mesh.To(oldEdge)
		next := searchNextSharedEdge(s.mesh, d, shared, oldEdge, oldTwin, crossed)
		switch {
		case next < 0:
			d.BindEdge, d.Ratio = oldEdge, d.history.ratio
			return s.Activate(d)
		case s.mesh.HalfEdge(next).Origin == crossed:
			d.BindEdge = next
		default:
			d.BindEdge = s.mesh.HalfEdge(next).Twin
		}
		newLower, _ := limitsFor(d.Length, edgeLength(s.mesh, d.BindEdge))
		d.Ratio = newLower
	} else {
		crossed := s.mesh.HalfEdge(oldEdge).Origin
		next := searchNextSharedEdge(s.mesh, d, shared, oldEdge, oldTwin, crossed)
		switch {
		case next < 0:
			d.BindEdge, d.Ratio = oldEdge, d.history.ratio
			return s.Activate(d)
		case s.mesh.To(next) == crossed:
			d.BindEdge = next
		default:
			d.BindEdge = s.mesh.HalfEdge(next).Twin
		}
		_, newUpper := limitsFor(d.Length, edgeLength(s.mesh, d.BindEdge))
		d.Ratio = newUpper
	}

	if err := s.Activate(d); err != nil {
		return err
	}
	d.visited[d.BindEdge] = true
	return nil
}

// Reject rolls d back to the state Step snapshotted before its last
// mutation: a pure Move if the bind edge didn't change, otherwise a
// deactivate/reset/reactivate onto the historical edge, grounded on
// s_door_system.py's _restore_last_state.
func (s *System) Reject(d *Door) error {
	if !d.Active {
		return ErrNotActive
	}
	if d.BindEdge == d.history.bindEdge {
		s.Move(d, d.history.ratio)
		return nil
	}

	if err := s.Deactivate(d); err != nil {
		return err
	}
	d.Ratio = d.history.ratio
	d.BindEdge = d.history.bindEdge
	return s.Activate(d)
}

// GetState returns a door's current (bindEdge, ratio), for the MH
// optimizer to snapshot as a best-so-far candidate.
func (d *Door) GetState() (int, float64) {
	return d.BindEdge, d.Ratio
}

// LoadManually forces d onto a specific (edge, ratio) via a full
// deactivate/reactivate, grounded on s_door_system.py's
// manually_load_history — used by the MH optimizer's End to restore
// every door to its best-so-far state.
func (s *System) LoadManually(d *Door, edge int, ratio float64) error {
	wasActive := d.Active
	d.BindEdge = edge
	d.Ratio = ratio
	if wasActive {
		if err := s.Deactivate(d); err != nil {
			return err
		}
	}
	return s.Activate(d)
}

// limitsFor computes the [lower, upper] move-limit pair for a door of
// the given length bound to an edge of the given length, without
// requiring a *Door to already be bound to it.
func limitsFor(length, eLen float64) (float64, float64) {
	half := length / 2 / eLen
	return half, 1 - half
}

// searchNextSharedEdge mirrors s_door_system.py's
// search_next_shared_edge: prefer a shared edge (other than the one
// just left, in either direction) incident to the crossed vertex,
// falling back to any unvisited shared edge at all so a cycle of rooms
// still makes progress.
func searchNextSharedEdge(mesh *halfedge.Mesh, d *Door, shared []int, oldEdge, oldTwin, crossed int) int {
	for _, e := range shared {
		if e == oldEdge || e == oldTwin {
			continue
		}
		if mesh.HalfEdge(e).Origin == crossed || mesh.To(e) == crossed {
			return e
		}
	}
	for _, e := range shared {
		if !d.visited[e] {
			return e
		}
	}
	return -1
}
