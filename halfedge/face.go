package halfedge

// Face is a single triangle of the mesh, identified by one of its three
// half-edges.
type Face struct {
	HalfEdge int

	// Room is the id of the room this face currently belongs to, or -1
	// if rooms have not yet been derived for this mesh.
	Room int

	removed bool
}
