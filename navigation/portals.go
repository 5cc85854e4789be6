package navigation

import (
	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
)

// Portal is a gap the path must pass through: the shared edge between two
// consecutive triangles of a tripath, oriented as Funnel expects: Right
// lies counter-clockwise of Left as seen from the face being left (with y
// pointing up, Right is on the traveler's left-hand side).
type Portal struct {
	Left, Right geom.Point
}

// BuildPortals converts a tripath (a sequence of adjacent face ids) into
// the sequence of portals the funnel algorithm tightens across, bookended
// by degenerate start/end portals, grounded on original_source
// g_navmesh.py's get_portals.
//
// Faces wind counter-clockwise, so a face's interior lies to the left of
// each of its directed half-edges. Crossing out of that face through its
// shared half-edge h (Origin -> To) therefore, with y pointing up, leaves
// To(h) on the traveler's left and h.Origin on their right; Funnel's
// Left/Right naming is the mirror of that, so Left is h.Origin and Right
// is To(h).
func BuildPortals(mesh *halfedge.Mesh, tripath []int, start, end geom.Point) []Portal {
	portals := make([]Portal, 0, len(tripath)+1)
	portals = append(portals, Portal{Left: start, Right: start})

	for i := 0; i < len(tripath)-1; i++ {
		shared := mesh.SharedEdges(tripath[i], tripath[i+1])
		h := shared[0]
		if mesh.HalfEdge(h).Face != tripath[i] {
			h = shared[1]
		}

		origin := mesh.Vertex(mesh.HalfEdge(h).Origin).Point
		to := mesh.Vertex(mesh.To(h)).Point
		portals = append(portals, Portal{Left: origin, Right: to})
	}

	portals = append(portals, Portal{Left: end, Right: end})
	return portals
}
