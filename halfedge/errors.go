package halfedge

import "errors"

var (
	// ErrNonManifold is returned when the input triangles do not form a
	// manifold mesh (an edge is shared by more than two triangles).
	ErrNonManifold = errors.New("halfedge: triangles do not form a manifold mesh")

	// ErrDegenerateTriangle is returned when a source triangle has a
	// repeated vertex index.
	ErrDegenerateTriangle = errors.New("halfedge: degenerate triangle")

	// ErrNoTwin is returned when an operation requires a half-edge to
	// have a twin (not be a boundary edge) and it does not.
	ErrNoTwin = errors.New("halfedge: half-edge has no twin")

	// ErrNotSplitVertex is returned by RemoveVertex when the vertex was
	// not introduced by a single prior SplitHalfEdge call, i.e. it does
	// not have exactly eight incident half-edges.
	ErrNotSplitVertex = errors.New("halfedge: vertex is not removable (expected 8 incident half-edges)")

	// ErrRemoved is returned when an operation is attempted on an entity
	// that has already been removed from the mesh.
	ErrRemoved = errors.New("halfedge: entity has been removed")

	// ErrOutOfRange is returned when an id does not reference a valid
	// arena slot.
	ErrOutOfRange = errors.New("halfedge: id out of range")
)
