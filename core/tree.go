package core

import "pkt.systems/panemux/schema"

// paneNode is one node of a tab's layout tree: either a leaf carrying a pane
// or a split with exactly two children. Splits are mutated in place so parent
// links never need to be stored; structure is always resolved by walking down
// from the root.
type paneNode struct {
	leaf *pane

	// split fields, meaningful only when leaf is nil
	id          schema.NodeID
	orientation schema.Orientation
	ratio       float64
	first       *paneNode
	second      *paneNode
}

func (n *paneNode) isLeaf() bool { return n.leaf != nil }

// split turns a leaf node into a split in place. The original pane moves to
// the first child; the second child holds the provided pane.
func (n *paneNode) split(orientation schema.Orientation, ratio float64, second *pane) {
	original := n.leaf
	n.leaf = nil
	n.id = newNodeID()
	n.orientation = orientation
	n.ratio = schema.ClampRatio(ratio)
	n.first = &paneNode{leaf: original}
	n.second = &paneNode{leaf: second}
}

// promote replaces this node's contents with the subtree rooted at child.
// Used when the child's sibling is removed: the grandparent keeps pointing at
// the same node value, so no upward links are touched.
func (n *paneNode) promote(child *paneNode) {
	*n = *child
}

// findLeaf returns the leaf node carrying the pane, or nil.
func (n *paneNode) findLeaf(id schema.PaneID) *paneNode {
	if n.isLeaf() {
		if n.leaf.id == id {
			return n
		}
		return nil
	}
	if found := n.first.findLeaf(id); found != nil {
		return found
	}
	return n.second.findLeaf(id)
}

// findSplit returns the split node with the given id, or nil.
func (n *paneNode) findSplit(id schema.NodeID) *paneNode {
	if n.isLeaf() {
		return nil
	}
	if n.id == id {
		return n
	}
	if found := n.first.findSplit(id); found != nil {
		return found
	}
	return n.second.findSplit(id)
}

// parentOf returns the parent of target and whether target was the first
// child. Returns nil when target is the root or absent.
func (n *paneNode) parentOf(target *paneNode) (*paneNode, bool) {
	if n.isLeaf() {
		return nil, false
	}
	if n.first == target {
		return n, true
	}
	if n.second == target {
		return n, false
	}
	if parent, isFirst := n.first.parentOf(target); parent != nil {
		return parent, isFirst
	}
	return n.second.parentOf(target)
}

// firstLeaf returns the first leaf in pre-order.
func (n *paneNode) firstLeaf() *pane {
	if n.isLeaf() {
		return n.leaf
	}
	return n.first.firstLeaf()
}

// leaves appends all panes in pre-order.
func (n *paneNode) leaves(acc []*pane) []*pane {
	if n.isLeaf() {
		return append(acc, n.leaf)
	}
	acc = n.first.leaves(acc)
	return n.second.leaves(acc)
}

func (n *paneNode) countLeaves() int {
	if n.isLeaf() {
		return 1
	}
	return n.first.countLeaves() + n.second.countLeaves()
}

// eachSplit visits every split node in pre-order.
func (n *paneNode) eachSplit(fn func(*paneNode)) {
	if n.isLeaf() {
		return
	}
	fn(n)
	n.first.eachSplit(fn)
	n.second.eachSplit(fn)
}

// eachLeafPostOrder visits every pane children-first. Pane teardown happens
// in this order.
func (n *paneNode) eachLeafPostOrder(fn func(*pane)) {
	if n.isLeaf() {
		fn(n.leaf)
		return
	}
	n.first.eachLeafPostOrder(fn)
	n.second.eachLeafPostOrder(fn)
}

func (n *paneNode) snapshot() *schema.NodeSnapshot {
	if n.isLeaf() {
		return &schema.NodeSnapshot{Type: schema.NodeTypeLeaf, Pane: n.leaf.snapshot()}
	}
	return &schema.NodeSnapshot{
		Type:        schema.NodeTypeSplit,
		Orientation: n.orientation,
		Ratio:       n.ratio,
		First:       n.first.snapshot(),
		Second:      n.second.snapshot(),
	}
}

// nodeFromSnapshot rebuilds a subtree in pre-order. Ratios are clamped into
// the allowed interval; split identities are freshly assigned since they are
// process-local and not part of the serialized shape.
func nodeFromSnapshot(snap *schema.NodeSnapshot) *paneNode {
	if snap.Type == schema.NodeTypeLeaf {
		return &paneNode{leaf: &pane{
			id:       snap.Pane.ID,
			provider: snap.Pane.ProviderID,
			state:    append([]byte(nil), snap.Pane.ProviderState...),
		}}
	}
	return &paneNode{
		id:          newNodeID(),
		orientation: snap.Orientation,
		ratio:       schema.ClampRatio(snap.Ratio),
		first:       nodeFromSnapshot(snap.First),
		second:      nodeFromSnapshot(snap.Second),
	}
}
