package core

import (
	"fmt"

	"pkt.systems/panemux/internal/logx"
	"pkt.systems/panemux/schema"
)

// SplitPane replaces the target leaf with a split whose first child keeps the
// original pane (id and provider unchanged) and whose second child is a fresh
// pane. An empty provider id inherits the original pane's provider; a zero
// ratio means an even split. Notifies pane_added then tree_structure_changed.
func (m *Model) SplitPane(paneID schema.PaneID, orientation schema.Orientation, ratio float64, provider schema.ProviderID) (schema.PaneID, error) {
	if err := m.begin(); err != nil {
		return "", err
	}
	defer m.end()
	if !orientation.Valid() {
		return "", fmt.Errorf("%w: %q", schema.ErrInvalidOrientation, orientation)
	}
	t, node := m.findPane(paneID)
	if node == nil {
		return "", schema.ErrPaneNotFound
	}
	if provider == "" {
		provider = node.leaf.provider
	}
	if !m.KnowsProvider(provider) {
		return "", fmt.Errorf("%w: %s", schema.ErrUnknownProvider, provider)
	}
	p := newPane(provider)
	if err := m.factory.Create(provider, p.instanceID()); err != nil {
		m.log.Warn("pane split failed", "pane", paneID, "provider", provider, "err", err)
		return "", fmt.Errorf("create provider instance: %w", err)
	}
	node.split(orientation, ratio, p)
	logx.WithTabPane(m.log, t.id, p.id).Info("pane split", "from", paneID, "orientation", orientation)
	m.notify(schema.EventPaneAdded, schema.PaneEvent{TabID: t.id, PaneID: p.id, ProviderID: provider}.Map())
	m.notify(schema.EventTreeStructureChanged, schema.TreeEvent{TabID: t.id}.Map())
	return p.id, nil
}

// ClosePane removes a leaf, promotes its sibling subtree into the parent, and
// destroys the pane's provider instance. Refuses to remove a tab's sole pane;
// the caller closes the tab instead. When the closed pane was active, the
// promoted subtree's first pre-order leaf becomes active. Notifies
// pane_removed and tree_structure_changed.
func (m *Model) ClosePane(paneID schema.PaneID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	t, node := m.findPane(paneID)
	if node == nil {
		return schema.ErrPaneNotFound
	}
	if node == t.root {
		return schema.ErrLastPane
	}
	removed := node.leaf
	wasActive := t.activePane == removed.id
	if err := m.removeLeaf(t, node); err != nil {
		return err
	}
	if err := m.factory.Destroy(removed.instanceID()); err != nil {
		m.log.Warn("provider destroy failed", "pane", removed.id, "provider", removed.provider, "err", err)
	}
	logx.WithTabPane(m.log, t.id, removed.id).Info("pane closed")
	m.notify(schema.EventPaneRemoved, schema.PaneEvent{TabID: t.id, PaneID: removed.id, ProviderID: removed.provider}.Map())
	m.notify(schema.EventTreeStructureChanged, schema.TreeEvent{TabID: t.id}.Map())
	if !wasActive {
		return nil
	}
	// removeLeaf reassigned the active pane; announce the new one.
	m.notify(schema.EventActivePaneChanged, schema.ActivePaneEvent{TabID: t.id, PaneID: t.activePane}.Map())
	return nil
}

// removeLeaf promotes the sibling of node into their shared parent and fixes
// up the tab's active pane and maximize marker. The caller owns teardown of
// the removed pane's provider instance.
func (m *Model) removeLeaf(t *tab, node *paneNode) error {
	parent, isFirst := t.root.parentOf(node)
	if parent == nil {
		return schema.ErrLastPane
	}
	sibling := parent.second
	if !isFirst {
		sibling = parent.first
	}
	removedID := node.leaf.id
	parent.promote(sibling)
	if t.activePane == removedID {
		t.activePane = parent.firstLeaf().id
	}
	if t.maximized == removedID {
		t.maximized = ""
	}
	return nil
}

// FocusPane makes a pane the active pane of the active tab. Fails when the
// pane is not part of the active tab. Notifies active_pane_changed.
func (m *Model) FocusPane(paneID schema.PaneID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return schema.ErrPaneNotInActiveTab
	}
	t := m.tabs[m.activeTab]
	if t.root.findLeaf(paneID) == nil {
		return schema.ErrPaneNotInActiveTab
	}
	if t.activePane == paneID {
		return nil
	}
	t.activePane = paneID
	m.notify(schema.EventActivePaneChanged, schema.ActivePaneEvent{TabID: t.id, PaneID: paneID}.Map())
	return nil
}

// ChangePaneContent swaps a pane's content provider: the old instance is torn
// down and a fresh instance of the new provider is created under the same
// instance id. The provider-state blob is cleared since it belonged to the
// old provider. Notifies pane_content_changed.
func (m *Model) ChangePaneContent(paneID schema.PaneID, provider schema.ProviderID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	t, node := m.findPane(paneID)
	if node == nil {
		return schema.ErrPaneNotFound
	}
	if !m.KnowsProvider(provider) {
		return fmt.Errorf("%w: %s", schema.ErrUnknownProvider, provider)
	}
	p := node.leaf
	previous := p.provider
	if err := m.factory.Destroy(p.instanceID()); err != nil {
		m.log.Warn("provider destroy failed", "pane", p.id, "provider", previous, "err", err)
	}
	if err := m.factory.Create(provider, p.instanceID()); err != nil {
		// Best effort: put an instance of the old provider back so the pane
		// is not left without content.
		if restoreErr := m.factory.Create(previous, p.instanceID()); restoreErr != nil {
			m.log.Error("pane left without provider instance", "pane", p.id, "err", restoreErr)
		}
		return fmt.Errorf("create provider instance: %w", err)
	}
	p.provider = provider
	p.state = nil
	logx.WithTabPane(m.log, t.id, p.id).Info("pane content changed", "from", previous, "to", provider)
	m.notify(schema.EventPaneContentChanged, schema.PaneEvent{TabID: t.id, PaneID: p.id, ProviderID: provider}.Map())
	return nil
}

// ExtractPaneToTab removes a pane from its tab without destroying its
// provider instance and re-homes it as the root pane of a new tab, keeping
// its id and state. Fails on a tab's sole pane. Notifies
// tree_structure_changed for the source tab and tab_added for the new one.
func (m *Model) ExtractPaneToTab(paneID schema.PaneID) (schema.TabID, error) {
	if err := m.begin(); err != nil {
		return "", err
	}
	defer m.end()
	src, node := m.findPane(paneID)
	if node == nil {
		return "", schema.ErrPaneNotFound
	}
	if node == src.root {
		return "", schema.ErrLastPane
	}
	p := node.leaf
	if err := m.removeLeaf(src, node); err != nil {
		return "", err
	}
	t := &tab{
		id:         newTabID(),
		name:       schema.NormalizeTabName(string(p.provider)),
		root:       &paneNode{leaf: p},
		activePane: p.id,
	}
	m.tabs = append(m.tabs, t)
	m.activeTab = len(m.tabs) - 1
	logx.WithTabPane(m.log, t.id, p.id).Info("pane extracted to tab", "from_tab", src.id)
	m.notify(schema.EventTreeStructureChanged, schema.TreeEvent{TabID: src.id}.Map())
	m.notify(schema.EventTabAdded, schema.TabEvent{TabID: t.id, Name: t.name}.Map())
	return t.id, nil
}
