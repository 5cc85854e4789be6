package geom

import "math"

// Point is a Cartesian point in the two-dimensional plane the floor plan
// lives in.
type Point [2]float64

// NewPoint constructs a Point from its components.
func NewPoint(x, y float64) Point {
	return Point{x, y}
}

func (p Point) X() float64 { return p[0] }
func (p Point) Y() float64 { return p[1] }

// Add two points p + q.
func (p Point) Add(q Point) Point {
	return Point{p[0] + q[0], p[1] + q[1]}
}

// Sub subtracts two points p - q.
func (p Point) Sub(q Point) Point {
	return Point{p[0] - q[0], p[1] - q[1]}
}

// MulScalar multiplies a point by a scalar.
func (p Point) MulScalar(s float64) Point {
	return Point{p[0] * s, p[1] * s}
}

// Mag computes the magnitude (L2-norm).
func (p Point) Mag() float64 {
	return math.Sqrt(p.Dot(p))
}

// Dot computes the dot product p . q.
func (p Point) Dot(q Point) float64 {
	return p[0]*q[0] + p[1]*q[1]
}

// Cross computes the z-component of the 3D cross product, i.e. the signed
// area of the parallelogram spanned by p and q.
func (p Point) Cross(q Point) float64 {
	return p[0]*q[1] - p[1]*q[0]
}

// Dist computes the Euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return p.Sub(q).Mag()
}

// Lerp linearly interpolates between p and q at parameter t in [0, 1].
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).MulScalar(t))
}

// IntersectsAABB implements the IntersectsAABB interface.
func (p Point) IntersectsAABB(query AABB) bool {
	for i := 0; i < 2; i++ {
		if p[i] < query.Center[i]-query.HalfSize[i] {
			return false
		}

		if p[i] > query.Center[i]+query.HalfSize[i] {
			return false
		}
	}

	return true
}
