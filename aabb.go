package geom

// AABB is an axis aligned bounding box in the plane.
type AABB struct {
	Center   Point
	HalfSize Point
}

// NewAABB constructs an AABB from its center and halfsize.
func NewAABB(center, halfSize Point) AABB {
	return AABB{center, halfSize}
}

// NewAABBFromBounds constructs an AABB from its min/max bounds.
func NewAABBFromBounds(minBound, maxBound Point) AABB {
	center := maxBound.Add(minBound).MulScalar(0.5)
	halfSize := maxBound.Sub(minBound).MulScalar(0.5)
	return NewAABB(center, halfSize)
}

// NewAABBFromPoints constructs an AABB enclosing a slice of points.
func NewAABBFromPoints(points []Point) AABB {
	minBound := points[0]
	maxBound := points[0]

	for _, point := range points[1:] {
		for i := 0; i < 2; i++ {
			if point[i] < minBound[i] {
				minBound[i] = point[i]
			}

			if point[i] > maxBound[i] {
				maxBound[i] = point[i]
			}
		}
	}

	return NewAABBFromBounds(minBound, maxBound)
}

// Buffer returns an AABB expanded by a percentage of its edge length.
func (a AABB) Buffer(s float64) AABB {
	return NewAABB(a.Center, a.HalfSize.MulScalar(1+s))
}

// GetMinBound returns the minimum bound.
func (a AABB) GetMinBound() Point {
	return a.Center.Sub(a.HalfSize)
}

// GetMaxBound returns the maximum bound.
func (a AABB) GetMaxBound() Point {
	return a.Center.Add(a.HalfSize)
}

// Quadrant computes the child AABB for one of the four quadrants (0-3,
// bit 0 selects +/-x, bit 1 selects +/-y).
func (a AABB) Quadrant(quadrant int) AABB {
	if quadrant < 0 || quadrant >= 4 {
		panic("quadrant out of range")
	}

	halfSize := a.HalfSize.MulScalar(0.5)
	center := a.Center

	if quadrant&1 == 1 {
		center[0] += halfSize.X()
	} else {
		center[0] -= halfSize.X()
	}

	if quadrant&2 == 2 {
		center[1] += halfSize.Y()
	} else {
		center[1] -= halfSize.Y()
	}

	return AABB{center, halfSize}
}

// IntersectsAABB implements the IntersectsAABB interface.
func (a AABB) IntersectsAABB(query AABB) bool {
	aMin := a.GetMinBound()
	aMax := a.GetMaxBound()
	qMin := query.GetMinBound()
	qMax := query.GetMaxBound()

	return aMin.X() <= qMax.X() &&
		aMax.X() >= qMin.X() &&
		aMin.Y() <= qMax.Y() &&
		aMax.Y() >= qMin.Y()
}
