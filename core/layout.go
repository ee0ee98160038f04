package core

import "pkt.systems/panemux/schema"

// Rect is a normalized bounding rectangle within a tab's unit square.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) centerX() float64 { return (r.X0 + r.X1) / 2 }
func (r Rect) centerY() float64 { return (r.Y0 + r.Y1) / 2 }

// LayoutNode is a read-only projection of one layout-tree node with its
// normalized bounds, for views and resize targeting. NodeID is set for
// splits, PaneID for leaves.
type LayoutNode struct {
	NodeID      schema.NodeID
	PaneID      schema.PaneID
	Provider    schema.ProviderID
	Active      bool
	Orientation schema.Orientation
	Ratio       float64
	Bounds      Rect
	First       *LayoutNode
	Second      *LayoutNode
}

// TreeLayout returns the layout projection for a tab.
func (m *Model) TreeLayout(tabID schema.TabID) (*LayoutNode, error) {
	t := m.findTab(tabID)
	if t == nil {
		return nil, schema.ErrTabNotFound
	}
	return layoutNode(t, t.root, Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}), nil
}

func layoutNode(t *tab, n *paneNode, bounds Rect) *LayoutNode {
	if n.isLeaf() {
		return &LayoutNode{
			PaneID:   n.leaf.id,
			Provider: n.leaf.provider,
			Active:   t.activePane == n.leaf.id,
			Bounds:   bounds,
		}
	}
	firstBounds, secondBounds := splitRect(bounds, n.orientation, n.ratio)
	return &LayoutNode{
		NodeID:      n.id,
		Orientation: n.orientation,
		Ratio:       n.ratio,
		Bounds:      bounds,
		First:       layoutNode(t, n.first, firstBounds),
		Second:      layoutNode(t, n.second, secondBounds),
	}
}

// splitRect partitions bounds along the split's orientation at its ratio.
// Horizontal splits divide the x interval (first child left); vertical splits
// divide the y interval (first child top).
func splitRect(bounds Rect, orientation schema.Orientation, ratio float64) (Rect, Rect) {
	if orientation == schema.OrientationHorizontal {
		mid := bounds.X0 + (bounds.X1-bounds.X0)*ratio
		return Rect{X0: bounds.X0, Y0: bounds.Y0, X1: mid, Y1: bounds.Y1},
			Rect{X0: mid, Y0: bounds.Y0, X1: bounds.X1, Y1: bounds.Y1}
	}
	mid := bounds.Y0 + (bounds.Y1-bounds.Y0)*ratio
	return Rect{X0: bounds.X0, Y0: bounds.Y0, X1: bounds.X1, Y1: mid},
		Rect{X0: bounds.X0, Y0: mid, X1: bounds.X1, Y1: bounds.Y1}
}

// ParentSplit returns the id of the split directly above a pane. Reports
// false when the pane is its tab's root.
func (m *Model) ParentSplit(paneID schema.PaneID) (schema.NodeID, bool) {
	t, node := m.findPane(paneID)
	if node == nil {
		return "", false
	}
	parent, _ := t.root.parentOf(node)
	if parent == nil {
		return "", false
	}
	return parent.id, true
}

// SetSplitRatio updates a split node's ratio, clamped into the allowed
// interval. Notifies tree_structure_changed.
func (m *Model) SetSplitRatio(nodeID schema.NodeID, ratio float64) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	for _, t := range m.tabs {
		if node := t.root.findSplit(nodeID); node != nil {
			node.ratio = schema.ClampRatio(ratio)
			m.notify(schema.EventTreeStructureChanged, schema.TreeEvent{TabID: t.id}.Map())
			return nil
		}
	}
	return schema.ErrNodeNotFound
}

// EvenPaneSizes resets every split ratio in a tab to an even division, with
// one batched tree_structure_changed notification.
func (m *Model) EvenPaneSizes(tabID schema.TabID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	t := m.findTab(tabID)
	if t == nil {
		return schema.ErrTabNotFound
	}
	t.root.eachSplit(func(n *paneNode) {
		n.ratio = schema.DefaultSplitRatio
	})
	m.notify(schema.EventTreeStructureChanged, schema.TreeEvent{TabID: t.id}.Map())
	return nil
}

// MaximizePane sets the transient maximize marker on the pane's tab. The
// topology is untouched; restore clears the marker. Notifies pane_maximized.
func (m *Model) MaximizePane(paneID schema.PaneID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	t, node := m.findPane(paneID)
	if node == nil {
		return schema.ErrPaneNotFound
	}
	if t.maximized == paneID {
		return nil
	}
	t.maximized = paneID
	m.notify(schema.EventPaneMaximized, schema.MaximizeEvent{TabID: t.id, PaneID: paneID, Maximized: true}.Map())
	return nil
}

// RestorePane clears the active tab's maximize marker. A no-op when nothing
// is maximized. Notifies pane_maximized with maximized=false.
func (m *Model) RestorePane() error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return nil
	}
	t := m.tabs[m.activeTab]
	if t.maximized == "" {
		return nil
	}
	paneID := t.maximized
	t.maximized = ""
	m.notify(schema.EventPaneMaximized, schema.MaximizeEvent{TabID: t.id, PaneID: paneID, Maximized: false}.Map())
	return nil
}
