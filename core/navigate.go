package core

import (
	"math"

	"pkt.systems/panemux/schema"
)

// geomEpsilon absorbs float error when comparing rectangle edges.
const geomEpsilon = 1e-9

type leafRect struct {
	id   schema.PaneID
	rect Rect
}

// Navigate finds the spatial neighbor of a pane in the given direction.
// Each leaf's normalized bounds come from walking root to leaf, partitioning
// the ancestor interval at every split. Candidates strictly in the queried
// direction are ranked by greatest perpendicular-axis overlap, then by
// smallest center-to-center distance, then by earliest pre-order position in
// the tree (the documented deterministic tie-break). Reports false when no
// leaf qualifies, and never returns the source pane itself.
func (m *Model) Navigate(from schema.PaneID, dir schema.Direction) (schema.PaneID, bool) {
	if !dir.Valid() {
		return "", false
	}
	t, node := m.findPane(from)
	if node == nil {
		return "", false
	}
	rects := collectLeafRects(t.root, Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}, nil)
	var source Rect
	for _, lr := range rects {
		if lr.id == from {
			source = lr.rect
			break
		}
	}
	best := -1
	bestOverlap := math.Inf(-1)
	bestDistance := math.Inf(1)
	for i, lr := range rects {
		if lr.id == from {
			continue
		}
		if !inDirection(source, lr.rect, dir) {
			continue
		}
		overlap := perpendicularOverlap(source, lr.rect, dir)
		distance := centerDistance(source, lr.rect)
		switch {
		case overlap > bestOverlap+geomEpsilon:
		case overlap > bestOverlap-geomEpsilon && distance < bestDistance-geomEpsilon:
		default:
			continue
		}
		best = i
		bestOverlap = overlap
		bestDistance = distance
	}
	if best < 0 {
		return "", false
	}
	return rects[best].id, true
}

func collectLeafRects(n *paneNode, bounds Rect, acc []leafRect) []leafRect {
	if n.isLeaf() {
		return append(acc, leafRect{id: n.leaf.id, rect: bounds})
	}
	firstBounds, secondBounds := splitRect(bounds, n.orientation, n.ratio)
	acc = collectLeafRects(n.first, firstBounds, acc)
	return collectLeafRects(n.second, secondBounds, acc)
}

// inDirection reports whether candidate lies strictly on the queried side of
// source, e.g. for up the candidate's bottom edge is at or above the
// source's top edge.
func inDirection(source, candidate Rect, dir schema.Direction) bool {
	switch dir {
	case schema.DirectionUp:
		return candidate.Y1 <= source.Y0+geomEpsilon
	case schema.DirectionDown:
		return candidate.Y0 >= source.Y1-geomEpsilon
	case schema.DirectionLeft:
		return candidate.X1 <= source.X0+geomEpsilon
	default:
		return candidate.X0 >= source.X1-geomEpsilon
	}
}

// perpendicularOverlap measures shared extent on the axis orthogonal to the
// movement: x for vertical movement, y for horizontal.
func perpendicularOverlap(source, candidate Rect, dir schema.Direction) float64 {
	if dir == schema.DirectionUp || dir == schema.DirectionDown {
		return math.Min(source.X1, candidate.X1) - math.Max(source.X0, candidate.X0)
	}
	return math.Min(source.Y1, candidate.Y1) - math.Max(source.Y0, candidate.Y0)
}

func centerDistance(a, b Rect) float64 {
	dx := a.centerX() - b.centerX()
	dy := a.centerY() - b.centerY()
	return math.Hypot(dx, dy)
}
