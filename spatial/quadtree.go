// Package spatial indexes planar geometry for fast bounding-box queries,
// adapted from an octree (component: accelerates point location for
// navigation over large floor plans).
package spatial

import (
	"errors"

	"github.com/archfloor/doorplan"
)

const (
	QuadtreeMaxDepth     = 21
	QuadtreeMaxLeafItems = 16
)

var (
	ErrQuadtreeItemNotInserted = errors.New("spatial: item not inserted")
	ErrQuadtreeCannotSplitNode = errors.New("spatial: cannot split node")
)

// Quadtree indexes items by their axis-aligned bounding box within a
// fixed bound, recursively splitting a leaf into four quadrants once it
// holds more than QuadtreeMaxLeafItems items.
type Quadtree struct {
	nodes map[uint64]*QuadtreeNode
	items []geom.IntersectsAABB
}

// NewQuadtree constructs a bounded quadtree.
func NewQuadtree(aabb geom.AABB) *Quadtree {
	return &Quadtree{
		nodes: map[uint64]*QuadtreeNode{1: NewQuadtreeNode(1, aabb)},
		items: make([]geom.IntersectsAABB, 0),
	}
}

// Insert adds an item to every leaf node whose bound it intersects,
// splitting any leaf that grows past QuadtreeMaxLeafItems.
func (q *Quadtree) Insert(item geom.IntersectsAABB) error {
	var code uint64

	codes := []uint64{}
	queue := []uint64{1}
	index := len(q.items)

	for len(queue) > 0 {
		code, queue = queue[0], queue[1:]
		node := q.nodes[code]

		if item.IntersectsAABB(node.aabb) {
			if node.isLeaf {
				codes = append(codes, code)
			} else {
				queue = append(queue, node.Children()...)
			}
		}
	}

	if len(codes) == 0 {
		return ErrQuadtreeItemNotInserted
	}

	q.items = append(q.items, item)

	for _, code := range codes {
		node := q.nodes[code]
		node.items = append(node.items, index)

		if node.shouldSplit() {
			if err := q.Split(code); err != nil {
				return err
			}
		}
	}

	return nil
}

// Split divides a leaf quadtree node into its four quadrant children.
func (q *Quadtree) Split(code uint64) error {
	node := q.nodes[code]

	if !node.canSplit() {
		return ErrQuadtreeCannotSplitNode
	}

	for quadrant, childCode := range node.Children() {
		aabb := node.aabb.Quadrant(quadrant)
		childNode := NewQuadtreeNode(childCode, aabb)

		for _, index := range node.items {
			if q.items[index].IntersectsAABB(aabb) {
				childNode.items = append(childNode.items, index)
			}
		}

		q.nodes[childCode] = childNode
	}

	clear(node.items)
	node.isLeaf = false

	return nil
}

// Query returns the indices of every inserted item whose bound may
// overlap query, deduplicated across the leaves it touches. When query is
// a geom.AABB, items whose own IntersectsAABB rejects it are dropped; for
// any other query type every item of each touched leaf is returned.
// Callers still need an exact containment test on the returned
// candidates, since the quadtree only prunes by bounding box.
func (q *Quadtree) Query(query geom.IntersectsAABB) []int {
	seen := make(map[int]bool)
	var result []int

	queue := []uint64{1}
	for len(queue) > 0 {
		var code uint64
		code, queue = queue[0], queue[1:]
		node := q.nodes[code]

		if !query.IntersectsAABB(node.aabb) {
			continue
		}

		if node.isLeaf {
			box, isBox := query.(geom.AABB)
			for _, index := range node.items {
				if seen[index] {
					continue
				}
				if isBox && !q.items[index].IntersectsAABB(box) {
					continue
				}
				seen[index] = true
				result = append(result, index)
			}
			continue
		}

		queue = append(queue, node.Children()...)
	}

	return result
}

// Item returns the item previously inserted at index (as returned by
// Query).
func (q *Quadtree) Item(index int) geom.IntersectsAABB {
	return q.items[index]
}

// QuadtreeNode is one node of a Quadtree, addressed by a Morton-style
// code: a leading 1 bit followed by two bits per level of descent.
type QuadtreeNode struct {
	items  []int
	aabb   geom.AABB
	code   uint64
	isLeaf bool
}

// NewQuadtreeNode constructs a leaf QuadtreeNode.
func NewQuadtreeNode(code uint64, aabb geom.AABB) *QuadtreeNode {
	return &QuadtreeNode{
		items:  make([]int, 0),
		aabb:   aabb,
		code:   code,
		isLeaf: true,
	}
}

// Depth computes the node's depth from its code.
func (n *QuadtreeNode) Depth() int {
	for depth := 0; depth <= QuadtreeMaxDepth; depth++ {
		if n.code>>(2*depth) == 1 {
			return depth
		}
	}

	panic("spatial: invalid quadtree code")
}

// Children computes the four quadrant child codes.
func (n *QuadtreeNode) Children() []uint64 {
	children := make([]uint64, 4)

	for quadrant := range children {
		children[quadrant] = n.code<<2 | uint64(quadrant)
	}

	return children
}

func (n *QuadtreeNode) canSplit() bool {
	return n.isLeaf && n.Depth() < QuadtreeMaxDepth
}

func (n *QuadtreeNode) shouldSplit() bool {
	return n.canSplit() && len(n.items) > QuadtreeMaxLeafItems
}
