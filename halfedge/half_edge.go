package halfedge

// HalfEdge is one directed side of a triangle, running from Origin to the
// origin of Next. Its id is its index in the arena and is never reused,
// even after the half-edge is removed by the topological editor.
type HalfEdge struct {
	Origin int
	Face   int
	Next   int
	Prev   int
	Twin   int

	// IsBlocked marks a half-edge as an impassable wall: either a border
	// edge (no twin), an interior constraint edge supplied at
	// construction time, or a wall segment created by activating a door.
	IsBlocked bool

	removed bool
}

// IsBoundary returns true if the half-edge is on the mesh boundary (no
// twin).
func (h HalfEdge) IsBoundary() bool {
	return h.Twin < 0
}
