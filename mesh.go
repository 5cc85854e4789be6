package geom

// Triangulator is the seam between this module and a constrained Delaunay
// triangulator. Given a point set and a list of constraint (wall) segments
// referencing those points by index, it produces a triangulation of the
// domain together with the subset of its half-edges that must be marked
// blocked because they realize a constraint segment.
//
// This module ships no implementation of Triangulator: the Wavefront-OBJ
// dialect read by the exchange package already carries a pre-triangulated
// mesh (its `f` records) and its constraint edges (its `l` records), which
// is exactly this interface's output contract. A real CDT library can be
// wired in by implementing Triangulate and feeding its result to
// halfedge.NewMesh instead of an OBJ file.
type Triangulator interface {
	Triangulate(points []Point, constraints [][2]int) (triangles [][3]int, fixedEdges [][2]int, err error)
}
