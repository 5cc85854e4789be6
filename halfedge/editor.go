package halfedge

import (
	"sort"

	"github.com/archfloor/doorplan"
)

// link sets a.Next = b and b.Prev = a, the bidirectional splice used
// throughout the editor to keep every face cycle consistent.
func (m *Mesh) link(a, b int) {
	m.halfEdges[a].Next = b
	m.halfEdges[b].Prev = a
}

func (m *Mesh) incidentTo(h, v int) bool {
	return m.halfEdges[h].Origin == v || m.To(h) == v
}

// SplitHalfEdge inserts a new vertex at pos on the segment of e (and its
// twin), splitting e's two incident triangles into four. It produces one
// new vertex, six new half-edges and two new faces; e and its twin are
// re-pointed to terminate at the new vertex instead of their original far
// endpoint. Returns the new vertex id, the six new half-edge ids and the
// two new face ids.
func (m *Mesh) SplitHalfEdge(e int, pos geom.Point) (int, [6]int, [2]int, error) {
	if e < 0 || e >= len(m.halfEdges) {
		return 0, [6]int{}, [2]int{}, ErrOutOfRange
	}
	if m.halfEdges[e].removed {
		return 0, [6]int{}, [2]int{}, ErrRemoved
	}

	t := m.halfEdges[e].Twin
	if t < 0 {
		return 0, [6]int{}, [2]int{}, ErrNoTwin
	}

	O := m.halfEdges[e].Origin
	D := m.To(e)
	K := m.Diagonal(e)
	J := m.Diagonal(t)
	F := m.halfEdges[e].Face
	Ft := m.halfEdges[t].Face

	n := m.halfEdges[e].Next    // D -> K, stays in F until moved to f0
	pEdge := m.halfEdges[e].Prev // K -> O, stays in F
	tn := m.halfEdges[t].Next   // O -> J, stays in Ft
	tp := m.halfEdges[t].Prev   // J -> D, stays in Ft until moved to f1

	v := len(m.vertices)
	m.vertices = append(m.vertices, Vertex{Point: pos, HalfEdge: -1, IsFixed: false})

	base := len(m.halfEdges)
	eNew, eNewT := base, base+1   // V->D, D->V
	e0, e0T := base+2, base+3     // V->K, K->V
	e1, e1T := base+4, base+5     // J->V, V->J
	m.halfEdges = append(m.halfEdges, HalfEdge{}, HalfEdge{}, HalfEdge{}, HalfEdge{}, HalfEdge{}, HalfEdge{})

	f0 := len(m.faces)
	f1 := f0 + 1
	m.faces = append(m.faces,
		Face{HalfEdge: n, Room: m.faces[F].Room},
		Face{HalfEdge: tp, Room: m.faces[Ft].Room},
	)

	m.halfEdges[eNew] = HalfEdge{Origin: v, Face: f0, Twin: eNewT, IsBlocked: m.halfEdges[e].IsBlocked}
	m.halfEdges[eNewT] = HalfEdge{Origin: D, Face: f1, Twin: eNew, IsBlocked: m.halfEdges[t].IsBlocked}
	m.halfEdges[e0] = HalfEdge{Origin: v, Face: F, Twin: e0T}
	m.halfEdges[e0T] = HalfEdge{Origin: K, Face: f0, Twin: e0}
	m.halfEdges[e1] = HalfEdge{Origin: J, Face: Ft, Twin: e1T}
	m.halfEdges[e1T] = HalfEdge{Origin: v, Face: f1, Twin: e1}

	m.halfEdges[t].Origin = v
	m.halfEdges[n].Face = f0
	m.halfEdges[tp].Face = f1

	// Re-thread the four triangle cycles. F and Ft keep their ids (O-side
	// remainder); f0 and f1 are the new D-side halves.
	m.link(e, e0)
	m.link(e0, pEdge)
	m.link(pEdge, e)
	m.faces[F].HalfEdge = e

	m.link(tn, e1)
	m.link(e1, t)
	m.link(t, tn)
	m.faces[Ft].HalfEdge = t

	m.link(n, e0T)
	m.link(e0T, eNew)
	m.link(eNew, n)

	m.link(tp, eNewT)
	m.link(eNewT, e1T)
	m.link(e1T, tp)

	m.vertices[v].edges = []int{e, t, eNew, eNewT, e0, e0T, e1, e1T}
	m.vertices[v].HalfEdge = e0

	m.removeVertexEdgeRef(D, e)
	m.removeVertexEdgeRef(D, t)
	m.vertices[D].edges = append(m.vertices[D].edges, eNew, eNewT)
	m.vertices[K].edges = append(m.vertices[K].edges, e0, e0T)
	m.vertices[J].edges = append(m.vertices[J].edges, e1, e1T)

	return v, [6]int{eNew, eNewT, e0, e0T, e1, e1T}, [2]int{f0, f1}, nil
}

// RemoveVertex deletes a vertex introduced by a single prior SplitHalfEdge
// call, restoring the two triangles it split back into one each. The
// precondition is that the vertex has exactly eight incident half-edges;
// this holds exactly for the direct result of SplitHalfEdge and is the
// property the door system relies on before calling Deactivate. Returns
// the six removed half-edge ids and the two removed face ids.
func (m *Mesh) RemoveVertex(v int) ([6]int, [2]int, error) {
	if v < 0 || v >= len(m.vertices) {
		return [6]int{}, [2]int{}, ErrOutOfRange
	}
	if m.vertices[v].removed {
		return [6]int{}, [2]int{}, ErrRemoved
	}

	if m.vertices[v].IsFixed {
		return [6]int{}, [2]int{}, ErrNotSplitVertex
	}

	edges := append([]int(nil), m.vertices[v].edges...)
	if len(edges) != 8 {
		return [6]int{}, [2]int{}, ErrNotSplitVertex
	}

	sort.Ints(edges)
	a, b := edges[0], edges[1]
	if m.halfEdges[a].Twin != b {
		return [6]int{}, [2]int{}, ErrNotSplitVertex
	}

	if m.halfEdges[a].Origin != v {
		a, b = b, a
	}
	A, B := a, b // A.Origin == v; B == A.Twin

	onB := m.halfEdges[B].Next // V -> K, incident to v
	onA := m.halfEdges[A].Prev // J -> V, incident to v
	onBTwin := m.halfEdges[onB].Twin
	onATwin := m.halfEdges[onA].Twin

	f0 := m.halfEdges[onBTwin].Face
	f1 := m.halfEdges[onATwin].Face

	nb1, nb2 := m.halfEdges[onBTwin].Prev, m.halfEdges[onBTwin].Next
	var restoreB, extB int
	if m.incidentTo(nb1, v) {
		extB, restoreB = nb1, nb2
	} else {
		extB, restoreB = nb2, nb1
	}

	na1, na2 := m.halfEdges[onATwin].Prev, m.halfEdges[onATwin].Next
	var restoreA, extA int
	if m.incidentTo(na1, v) {
		extA, restoreA = na1, na2
	} else {
		extA, restoreA = na2, na1
	}

	pEdge := m.halfEdges[onB].Next // untouched far edge on B's original face
	tn := m.halfEdges[onA].Prev    // untouched far edge on A's original face
	D := m.halfEdges[restoreB].Origin
	K := m.To(onB)
	J := m.halfEdges[onA].Origin

	bFace := m.halfEdges[B].Face
	aFace := m.halfEdges[A].Face

	m.link(B, restoreB)
	m.halfEdges[restoreB].Face = bFace
	m.link(restoreB, pEdge)

	m.link(tn, restoreA)
	m.link(restoreA, A)
	m.halfEdges[restoreA].Face = aFace

	m.halfEdges[A].Origin = D

	m.faces[bFace].HalfEdge = B
	m.faces[aFace].HalfEdge = A

	removedEdges := [6]int{onA, onB, onATwin, onBTwin, extA, extB}
	for _, id := range removedEdges {
		m.halfEdges[id].removed = true
	}
	removedFaces := [2]int{f0, f1}
	m.faces[f0].removed = true
	m.faces[f1].removed = true

	m.removeVertexEdgeRef(D, extB)
	m.removeVertexEdgeRef(D, extA)
	m.vertices[D].edges = append(m.vertices[D].edges, B, A)
	m.removeVertexEdgeRef(K, onB)
	m.removeVertexEdgeRef(K, onBTwin)
	m.removeVertexEdgeRef(J, onA)
	m.removeVertexEdgeRef(J, onATwin)

	m.vertices[v].removed = true
	m.vertices[v].edges = nil

	return removedEdges, removedFaces, nil
}

func (m *Mesh) removeVertexEdgeRef(vertex, edge int) {
	edges := m.vertices[vertex].edges
	for i, id := range edges {
		if id == edge {
			m.vertices[vertex].edges = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}
