package halfedge

import (
	"github.com/archfloor/doorplan"
)

// Vertex is a point of the triangulation. HalfEdge is one outgoing
// half-edge incident on it, used as a traversal seed.
type Vertex struct {
	Point    geom.Point
	HalfEdge int

	// IsBlocked marks a vertex that touches a wall (border or interior
	// constraint), mirroring the half-edges incident on it.
	IsBlocked bool

	// IsFixed is true for a vertex of the original triangulation and
	// false for one introduced by SplitHalfEdge. Only a non-fixed vertex
	// may be removed by RemoveVertex.
	IsFixed bool

	// edges holds every half-edge incident on this vertex, in either
	// direction (origin here or terminating here). It is kept in sync by
	// the mesh constructor and by the topological editor, and its length
	// is the precondition RemoveVertex checks: a vertex introduced by a
	// single SplitHalfEdge call always has exactly 8 incident half-edges.
	edges []int

	removed bool
}
