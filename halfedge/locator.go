package halfedge

import (
	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/spatial"
)

// faceLocator is an IntersectsAABB wrapper binding a face id to its
// current triangle, so a Quadtree query can be mapped back to the face
// without re-deriving it.
type faceLocator struct {
	id       int
	triangle geom.Triangle
}

func (f faceLocator) IntersectsAABB(aabb geom.AABB) bool {
	return f.triangle.IntersectsAABB(aabb)
}

// RebuildLocator indexes every live face's triangle in a quadtree so
// LocatePoint no longer needs a full linear scan. Call this after a batch
// of SplitHalfEdge/RemoveVertex edits (e.g. once a door finishes sliding)
// since the index does not track mesh mutations incrementally.
func (m *Mesh) RebuildLocator() {
	if len(m.faces) == 0 {
		m.locator = nil
		return
	}

	points := make([]geom.Point, 0, len(m.vertices))
	for i := range m.vertices {
		if !m.vertices[i].removed {
			points = append(points, m.vertices[i].Point)
		}
	}
	if len(points) == 0 {
		m.locator = nil
		return
	}

	bounds := geom.NewAABBFromPoints(points).Buffer(0.01)
	qt := spatial.NewQuadtree(bounds)

	for i := range m.faces {
		if m.faces[i].removed {
			continue
		}
		_ = qt.Insert(faceLocator{id: i, triangle: m.FaceTriangle(i)})
	}

	m.locator = qt
}

// locatePointIndexed consults the quadtree accelerator, if built, and
// tests only the candidate faces it returns; it returns -1 if the
// accelerator has not been built or none of its candidates contains p.
func (m *Mesh) locatePointIndexed(p geom.Point) int {
	if m.locator == nil {
		return -1
	}

	probe := geom.NewAABB(p, geom.NewPoint(0, 0))
	for _, index := range m.locator.Query(probe) {
		fl := m.locator.Item(index).(faceLocator)
		if m.faces[fl.id].removed {
			continue
		}
		if m.ContainsPoint(fl.id, p) {
			return fl.id
		}
	}
	return -1
}
