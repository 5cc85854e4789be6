package navigation

import (
	"container/heap"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/halfedge"
)

// TriangleAStar searches the triangle dual graph from start to end,
// weighting each step by the Euclidean distance between triangle
// centroids and skipping neighbors reached only through a blocked
// half-edge, grounded on original_source u_path_finding.py's a_star and
// euclidean_distance.
func TriangleAStar(mesh *halfedge.Mesh, start, end int) ([]int, error) {
	if start == end {
		return []int{start}, nil
	}

	goal := mesh.FaceTriangle(end).Centroid()

	gScore := map[int]float64{start: 0}
	cameFrom := map[int]int{}

	open := &faceHeap{{face: start, f: heuristic(mesh, start, goal)}}
	heap.Init(open)
	onOpen := map[int]bool{start: true}
	closed := map[int]bool{}

	for open.Len() > 0 {
		current := heap.Pop(open).(faceItem).face
		onOpen[current] = false
		if current == end {
			return reconstruct(cameFrom, current), nil
		}
		closed[current] = true

		currentCentroid := mesh.FaceTriangle(current).Centroid()
		for _, edge := range mesh.FaceHalfEdges(current) {
			h := mesh.HalfEdge(edge)
			if h.IsBoundary() || h.IsBlocked {
				continue
			}

			neighbor := mesh.HalfEdge(h.Twin).Face
			if closed[neighbor] {
				continue
			}

			step := currentCentroid.Dist(mesh.FaceTriangle(neighbor).Centroid())
			tentative := gScore[current] + step

			if g, ok := gScore[neighbor]; !ok || tentative < g {
				gScore[neighbor] = tentative
				cameFrom[neighbor] = current
				f := tentative + heuristic(mesh, neighbor, goal)
				if onOpen[neighbor] {
					open.update(neighbor, f)
				} else {
					heap.Push(open, faceItem{face: neighbor, f: f})
					onOpen[neighbor] = true
				}
			}
		}
	}

	return nil, ErrNoPath
}

func heuristic(mesh *halfedge.Mesh, face int, goal geom.Point) float64 {
	return mesh.FaceTriangle(face).Centroid().Dist(goal)
}

func reconstruct(cameFrom map[int]int, current int) []int {
	path := []int{current}
	for {
		prev, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append([]int{prev}, path...)
		current = prev
	}
	return path
}

type faceItem struct {
	face int
	f    float64
}

type faceHeap []faceItem

func (h faceHeap) Len() int            { return len(h) }
func (h faceHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h faceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *faceHeap) Push(x interface{}) { *h = append(*h, x.(faceItem)) }
func (h *faceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// update lowers the priority of an already-queued face, or is a no-op if
// face isn't present (the caller only invokes this when onOpen confirms
// it is).
func (h *faceHeap) update(face int, f float64) {
	for i := range *h {
		if (*h)[i].face == face {
			(*h)[i].f = f
			heap.Fix(h, i)
			return
		}
	}
}
