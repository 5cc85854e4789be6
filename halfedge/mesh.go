// Package halfedge implements a half-edge triangle mesh over a
// pre-triangulated 2D domain (component C1), plus the reversible
// topological editor that inserts and removes vertices along an edge
// (component C2).
package halfedge

import (
	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/spatial"
)

// Mesh is an index-based half-edge mesh data structure for a 2D manifold
// triangulation. Vertices, half-edges and faces are stored in append-only
// arenas: ids are never recycled, and a removed entity is tombstoned
// rather than compacted out, so ids captured before a removal (door
// history, navigation caches) stay meaningful to check against.
type Mesh struct {
	vertices  []Vertex
	halfEdges []HalfEdge
	faces     []Face

	// locator is an optional quadtree accelerator for LocatePoint, built
	// by RebuildLocator and left nil (falling back to a linear scan)
	// until then.
	locator *spatial.Quadtree
}

// NewMesh builds a Mesh from a triangulated point set. triangles lists
// each face as three vertex indices in counter-clockwise order; fixedEdges
// lists the wall segments (as vertex index pairs) that must be marked
// blocked. This is the seam consumed from a geom.Triangulator's output, or
// directly from the OBJ dialect's f/l records.
func NewMesh(points []geom.Point, triangles [][3]int, fixedEdges [][2]int) (*Mesh, error) {
	m := &Mesh{
		vertices:  make([]Vertex, len(points)),
		halfEdges: make([]HalfEdge, 0, 3*len(triangles)),
		faces:     make([]Face, len(triangles)),
	}

	for i, p := range points {
		m.vertices[i] = Vertex{Point: p, HalfEdge: -1, IsFixed: true}
	}

	shared := make(map[[2]int]int)
	consumed := make(map[[2]int]bool)

	for i, tri := range triangles {
		if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
			return nil, ErrDegenerateTriangle
		}

		base := len(m.halfEdges)
		m.faces[i] = Face{HalfEdge: base, Room: -1}

		for j := 0; j < 3; j++ {
			origin := tri[j]
			dest := tri[(j+1)%3]

			m.halfEdges = append(m.halfEdges, HalfEdge{
				Origin: origin,
				Face:   i,
				Next:   base + (j+1)%3,
				Prev:   base + (j+2)%3,
				Twin:   -1,
			})
			id := base + j

			key := orderedPair(origin, dest)
			if consumed[key] {
				// A third triangle claiming an edge already matched once
				// is non-manifold input, not a fresh boundary edge.
				return nil, ErrNonManifold
			} else if twin, ok := shared[key]; ok {
				m.halfEdges[id].Twin = twin
				m.halfEdges[twin].Twin = id
				consumed[key] = true
			} else {
				shared[key] = id
			}

			m.vertices[origin].HalfEdge = id
			m.vertices[origin].edges = append(m.vertices[origin].edges, id)
			m.vertices[dest].edges = append(m.vertices[dest].edges, id)
		}
	}

	for id := range m.halfEdges {
		if m.halfEdges[id].IsBoundary() {
			m.halfEdges[id].IsBlocked = true
			m.vertices[m.halfEdges[id].Origin].IsBlocked = true
			m.vertices[m.To(id)].IsBlocked = true
		}
	}

	for _, fe := range fixedEdges {
		key := orderedPair(fe[0], fe[1])
		id, ok := shared[key]
		if !ok {
			continue // not an edge of the triangulation
		}
		m.halfEdges[id].IsBlocked = true
		m.vertices[fe[0]].IsBlocked = true
		m.vertices[fe[1]].IsBlocked = true
		if twin := m.halfEdges[id].Twin; twin >= 0 {
			m.halfEdges[twin].IsBlocked = true
		}
	}

	return m, nil
}

func orderedPair(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

// NumVertices returns the size of the vertex arena, including tombstoned
// entries.
func (m *Mesh) NumVertices() int { return len(m.vertices) }

// NumHalfEdges returns the size of the half-edge arena, including
// tombstoned entries.
func (m *Mesh) NumHalfEdges() int { return len(m.halfEdges) }

// NumFaces returns the size of the face arena, including tombstoned
// entries.
func (m *Mesh) NumFaces() int { return len(m.faces) }

// Vertex returns the vertex with the given id.
func (m *Mesh) Vertex(id int) *Vertex { return &m.vertices[id] }

// HalfEdge returns the half-edge with the given id.
func (m *Mesh) HalfEdge(id int) *HalfEdge { return &m.halfEdges[id] }

// Face returns the face with the given id.
func (m *Mesh) Face(id int) *Face { return &m.faces[id] }

// VertexRemoved reports whether a vertex id has been tombstoned.
func (m *Mesh) VertexRemoved(id int) bool { return m.vertices[id].removed }

// HalfEdgeRemoved reports whether a half-edge id has been tombstoned.
func (m *Mesh) HalfEdgeRemoved(id int) bool { return m.halfEdges[id].removed }

// FaceRemoved reports whether a face id has been tombstoned.
func (m *Mesh) FaceRemoved(id int) bool { return m.faces[id].removed }

// VertexEdges returns all half-edges incident on a vertex, in either
// direction.
func (m *Mesh) VertexEdges(id int) []int { return m.vertices[id].edges }

// To returns the id of the vertex the half-edge terminates at, derived as
// the origin of its successor around the face.
func (m *Mesh) To(id int) int {
	return m.halfEdges[m.halfEdges[id].Next].Origin
}

// Diagonal returns the id of the vertex opposite a half-edge within its
// triangle.
func (m *Mesh) Diagonal(id int) int {
	return m.halfEdges[m.halfEdges[id].Prev].Origin
}

// FaceHalfEdges returns the three half-edges bounding a face, in winding
// order starting from the face's seed half-edge.
func (m *Mesh) FaceHalfEdges(id int) []int {
	seed := m.faces[id].HalfEdge
	edges := make([]int, 0, 3)
	next := seed

	for {
		edges = append(edges, next)
		next = m.halfEdges[next].Next
		if next == seed {
			break
		}
	}

	return edges
}

// FaceVertices returns the vertex ids of a face, in winding order.
func (m *Mesh) FaceVertices(id int) []int {
	edges := m.FaceHalfEdges(id)
	vertices := make([]int, len(edges))
	for i, e := range edges {
		vertices[i] = m.halfEdges[e].Origin
	}
	return vertices
}

// FaceTriangle returns the geometric triangle of a face.
func (m *Mesh) FaceTriangle(id int) geom.Triangle {
	v := m.FaceVertices(id)
	return geom.NewTriangle(m.vertices[v[0]].Point, m.vertices[v[1]].Point, m.vertices[v[2]].Point)
}

// FaceNeighbors returns the ids of the faces adjacent to a face across a
// half-edge that has a twin (blocked or not — callers that only want
// passable neighbors should filter by IsBlocked themselves).
func (m *Mesh) FaceNeighbors(id int) []int {
	neighbors := make([]int, 0, 3)
	for _, e := range m.FaceHalfEdges(id) {
		h := m.halfEdges[e]
		if !h.IsBoundary() {
			neighbors = append(neighbors, m.halfEdges[h.Twin].Face)
		}
	}
	return neighbors
}

// SharedEdges returns the half-edges of face a whose twin belongs to face
// b (there is exactly one for adjacent triangles, but the helper returns
// all matches so callers can assert on the count).
func (m *Mesh) SharedEdges(a, b int) []int {
	var shared []int
	for _, e := range m.FaceHalfEdges(a) {
		h := m.halfEdges[e]
		if !h.IsBoundary() && m.halfEdges[h.Twin].Face == b {
			shared = append(shared, e)
		}
	}
	return shared
}

// ContainsPoint reports whether a point lies within a face's triangle.
func (m *Mesh) ContainsPoint(face int, p geom.Point) bool {
	return m.FaceTriangle(face).Contains(p)
}

// LocatePoint finds the live face containing p, returning -1 if none
// does. It consults the quadtree accelerator built by RebuildLocator when
// one is present, and otherwise falls back to a linear scan; both paths
// agree on the same result since the fallback is the ground truth.
func (m *Mesh) LocatePoint(p geom.Point) int {
	if face := m.locatePointIndexed(p); face >= 0 {
		return face
	}

	for i := range m.faces {
		if m.faces[i].removed {
			continue
		}
		if m.ContainsPoint(i, p) {
			return i
		}
	}
	return -1
}
