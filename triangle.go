package geom

// Triangle in the two-dimensional plane, given by its three corners in
// counter-clockwise winding order.
type Triangle struct {
	P Point
	Q Point
	R Point
}

// NewTriangle constructs a Triangle from its three corners.
func NewTriangle(p, q, r Point) Triangle {
	return Triangle{p, q, r}
}

// SignedArea computes twice the signed area of the triangle; positive when
// P, Q, R wind counter-clockwise, negative when they wind clockwise, and
// zero when the three points are collinear.
func (t Triangle) SignedArea() float64 {
	return t.Q.Sub(t.P).Cross(t.R.Sub(t.P))
}

// Area computes the unsigned area.
func (t Triangle) Area() float64 {
	a := t.SignedArea()
	if a < 0 {
		return -a / 2
	}
	return a / 2
}

// Flipped reports whether the triangle winds clockwise, i.e. has a
// negative signed area.
func (t Triangle) Flipped() bool {
	return t.SignedArea() < 0
}

// Centroid computes the triangle's center, used as the node of the
// navigation dual graph.
func (t Triangle) Centroid() Point {
	return Point{
		(t.P[0] + t.Q[0] + t.R[0]) / 3,
		(t.P[1] + t.Q[1] + t.R[1]) / 3,
	}
}

// Contains reports whether a point lies within the (closed) triangle,
// tested by the sign of the cross product along each edge.
func (t Triangle) Contains(p Point) bool {
	d1 := cross2(t.Q.Sub(t.P), p.Sub(t.P))
	d2 := cross2(t.R.Sub(t.Q), p.Sub(t.Q))
	d3 := cross2(t.P.Sub(t.R), p.Sub(t.R))

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0

	return !(hasNeg && hasPos)
}

func cross2(a, b Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// IntersectsAABB implements the IntersectsAABB interface by testing the
// triangle's own bounding box against query; used to index faces in a
// Quadtree for accelerated point location.
func (t Triangle) IntersectsAABB(query AABB) bool {
	box := NewAABBFromPoints([]Point{t.P, t.Q, t.R})
	return box.IntersectsAABB(query)
}

// ClosestPointOnSegment projects p onto the segment [a, b], clamped to the
// segment's extent.
func ClosestPointOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}

	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return a.Add(ab.MulScalar(t))
}
