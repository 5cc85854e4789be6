package geom

// IntersectsAABB is implemented by any geometric primitive that can test
// overlap against an axis-aligned bounding box.
type IntersectsAABB interface {
	IntersectsAABB(AABB) bool
}
