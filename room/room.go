// Package room derives rooms from a half-edge mesh by flood-filling across
// non-blocked (passable) half-edges (component C3), grounded on
// original_source FloorPlan.find_rooms/loop_edges.
package room

import "github.com/archfloor/doorplan/halfedge"

// Room is a connected group of triangle faces separated from its
// neighbors by blocked (wall) half-edges.
type Room struct {
	ID int

	Faces []int

	// InnerWalls are blocked half-edges whose twin belongs to this mesh
	// (i.e. shared with another room). OuterWalls are blocked half-edges
	// with no twin (the building envelope).
	InnerWalls []int
	OuterWalls []int
}

// Model holds the rooms derived for a mesh and their pairwise adjacency
// (recomputed whenever the door system activates or deactivates a door,
// since that flips a shared wall between blocked and passable).
type Model struct {
	mesh  *halfedge.Mesh
	rooms []*Room

	// adjacency[{a, b}] (a <= b) lists the blocked half-edges shared
	// between rooms a and b, from both rooms' sides.
	adjacency map[[2]int][]int
}

// NewModel derives the initial room partition of mesh.
func NewModel(mesh *halfedge.Mesh) *Model {
	m := &Model{mesh: mesh}
	m.Recompute()
	return m
}

// Rooms returns the current rooms, indexed by Room.ID.
func (m *Model) Rooms() []*Room { return m.rooms }

// Room returns the room with the given id.
func (m *Model) Room(id int) *Room { return m.rooms[id] }

// RoomOf returns the id of the room a face currently belongs to, or -1 if
// the face has no room (not yet computed, or removed).
func (m *Model) RoomOf(face int) int {
	if m.mesh.FaceRemoved(face) {
		return -1
	}
	return m.mesh.Face(face).Room
}

// SharedEdges returns the blocked half-edges shared between two rooms.
func (m *Model) SharedEdges(a, b int) []int {
	if a > b {
		a, b = b, a
	}
	return m.adjacency[[2]int{a, b}]
}

// AddFace assigns a face to a room, for use by the door system when a
// split introduces new faces on one side of a gap (original_source
// s_door_system.py's room reassignment after activation). It does not
// itself refresh wall/adjacency bookkeeping; call RefreshWalls once after
// a batch of edits.
func (m *Model) AddFace(face, roomID int) {
	m.mesh.Face(face).Room = roomID
	room := m.rooms[roomID]
	room.Faces = append(room.Faces, face)
}

// RemoveFaces drops faces from whichever room they currently belong to,
// for use by the door system when deactivation collapses the faces a
// prior activation had introduced.
func (m *Model) RemoveFaces(faces []int) {
	byRoom := make(map[int]map[int]bool)
	for _, f := range faces {
		id := m.mesh.Face(f).Room
		if id < 0 {
			continue
		}
		if byRoom[id] == nil {
			byRoom[id] = make(map[int]bool)
		}
		byRoom[id][f] = true
	}

	for id, drop := range byRoom {
		room := m.rooms[id]
		kept := room.Faces[:0]
		for _, f := range room.Faces {
			if !drop[f] {
				kept = append(kept, f)
			}
		}
		room.Faces = kept
	}
}

// RefreshWalls rebuilds every room's InnerWalls/OuterWalls and the
// pairwise adjacency index from the rooms' current Faces sets, without
// re-deriving which room a face belongs to. Call this after AddFace/
// RemoveFaces so SharedEdges reflects a door's latest activation or
// deactivation; it never merges or splits rooms, unlike Recompute.
func (m *Model) RefreshWalls() {
	for _, room := range m.rooms {
		room.InnerWalls = nil
		room.OuterWalls = nil
	}

	m.adjacency = make(map[[2]int][]int)

	for _, room := range m.rooms {
		for _, face := range room.Faces {
			if m.mesh.FaceRemoved(face) {
				continue
			}
			for _, e := range m.mesh.FaceHalfEdges(face) {
				h := m.mesh.HalfEdge(e)
				if !h.IsBlocked {
					continue
				}
				if h.IsBoundary() {
					room.OuterWalls = append(room.OuterWalls, e)
					continue
				}
				room.InnerWalls = append(room.InnerWalls, e)

				other := m.mesh.Face(m.mesh.HalfEdge(h.Twin).Face).Room
				key := [2]int{room.ID, other}
				if room.ID > other {
					key = [2]int{other, room.ID}
				}
				m.adjacency[key] = append(m.adjacency[key], e)
			}
		}
	}
}

// Recompute re-derives the room partition from scratch by flood-filling
// across every non-blocked half-edge, starting a new room at each
// unvisited face. This is the initial derivation from the raw
// triangulation (before any door has ever activated); the door system
// must never call it afterwards, since a passable door gap would flood
// straight through it and erroneously merge two rooms that are only
// meant to gain a doorway between them, not lose their identity.
func (m *Model) Recompute() {
	n := m.mesh.NumFaces()
	visited := make([]bool, n)
	m.rooms = nil

	for start := 0; start < n; start++ {
		if visited[start] || m.mesh.FaceRemoved(start) {
			continue
		}

		room := &Room{ID: len(m.rooms)}
		queue := []int{start}
		visited[start] = true

		for len(queue) > 0 {
			face := queue[0]
			queue = queue[1:]
			room.Faces = append(room.Faces, face)
			m.mesh.Face(face).Room = room.ID

			for _, e := range m.mesh.FaceHalfEdges(face) {
				h := m.mesh.HalfEdge(e)
				if h.IsBoundary() {
					if h.IsBlocked {
						room.OuterWalls = append(room.OuterWalls, e)
					}
					continue
				}

				twinFace := m.mesh.HalfEdge(h.Twin).Face
				if h.IsBlocked {
					room.InnerWalls = append(room.InnerWalls, e)
					continue
				}

				if !visited[twinFace] {
					visited[twinFace] = true
					queue = append(queue, twinFace)
				}
			}
		}

		m.rooms = append(m.rooms, room)
	}

	m.adjacency = make(map[[2]int][]int)
	for _, room := range m.rooms {
		for _, e := range room.InnerWalls {
			h := m.mesh.HalfEdge(e)
			other := m.mesh.Face(m.mesh.HalfEdge(h.Twin).Face).Room
			key := [2]int{room.ID, other}
			if room.ID > other {
				key = [2]int{other, room.ID}
			}
			m.adjacency[key] = append(m.adjacency[key], e)
		}
	}
}
