package navigation

import "github.com/archfloor/doorplan"

// Funnel tightens a portal corridor into a taut polyline by the stupid
// funnel algorithm, grounded on original_source g_navmesh.py's
// funnel_algorithm/MathUtils.triarea2/is_inside_face.
func Funnel(portals []Portal) []geom.Point {
	if len(portals) == 0 {
		return nil
	}

	apex := portals[0].Left
	left := portals[0].Left
	right := portals[0].Right
	apexIndex, leftIndex, rightIndex := 0, 0, 0

	path := []geom.Point{apex}

	for i := 1; i < len(portals); i++ {
		leftCandidate := portals[i].Left
		rightCandidate := portals[i].Right

		if triarea2(apex, right, rightCandidate) <= 0 {
			if apex == right || triarea2(apex, left, rightCandidate) > 0 {
				right = rightCandidate
				rightIndex = i
			} else {
				path = append(path, left)
				apex = left
				apexIndex = leftIndex
				left = apex
				right = apex
				leftIndex = apexIndex
				rightIndex = apexIndex
				i = apexIndex
				continue
			}
		}

		if triarea2(apex, left, leftCandidate) >= 0 {
			if apex == left || triarea2(apex, right, leftCandidate) < 0 {
				left = leftCandidate
				leftIndex = i
			} else {
				path = append(path, right)
				apex = right
				apexIndex = rightIndex
				left = apex
				right = apex
				leftIndex = apexIndex
				rightIndex = apexIndex
				i = apexIndex
				continue
			}
		}
	}

	last := portals[len(portals)-1].Left
	if path[len(path)-1] != last {
		path = append(path, last)
	}
	return path
}

// triarea2 is twice the signed area of triangle (a, b, c): positive when
// c lies to the left of directed line a->b, negative to the right, zero
// when collinear.
func triarea2(a, b, c geom.Point) float64 {
	ax := b.X() - a.X()
	ay := b.Y() - a.Y()
	bx := c.X() - a.X()
	by := c.Y() - a.Y()
	return ax*by - bx*ay
}
