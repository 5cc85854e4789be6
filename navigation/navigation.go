// Package navigation locates points within the mesh, finds a path of
// triangles between them with A*, and tightens that corridor into a taut
// geodesic polyline with the funnel algorithm (component C4), grounded on
// original_source g_navmesh.py/u_path_finding.py.
package navigation

import (
	"errors"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
)

// ErrNoFace is returned when a query point does not lie within any live
// face of the mesh.
var ErrNoFace = errors.New("navigation: point is outside the mesh")

// ErrNoPath is returned when no sequence of passable triangles connects
// the start and end faces.
var ErrNoPath = errors.New("navigation: no path between start and end")

// FindPath computes the taut path between two points of the mesh,
// returning the polyline from start to end. It locates the containing
// triangle of each point, searches the triangle dual graph with A*
// (skipping blocked shared edges), and tightens the resulting corridor
// with the funnel algorithm.
func FindPath(mesh *halfedge.Mesh, start, end geom.Point) ([]geom.Point, error) {
	startFace := mesh.LocatePoint(start)
	if startFace < 0 {
		return nil, ErrNoFace
	}

	endFace := mesh.LocatePoint(end)
	if endFace < 0 {
		return nil, ErrNoFace
	}

	if startFace == endFace {
		return []geom.Point{start, end}, nil
	}

	tripath, err := TriangleAStar(mesh, startFace, endFace)
	if err != nil {
		return nil, err
	}

	portals := BuildPortals(mesh, tripath, start, end)
	return Funnel(portals), nil
}

// PathLength sums the Euclidean length of a polyline's consecutive
// segments.
func PathLength(path []geom.Point) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += path[i].Dist(path[i-1])
	}
	return total
}
