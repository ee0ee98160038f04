package core

import (
	"fmt"

	"pkt.systems/panemux/schema"
)

// Serialize captures the whole workspace as a snapshot: tabs in display
// order, per-tab trees in pre-order, metadata, and widget preferences. The
// transient maximize markers are deliberately absent.
func (m *Model) Serialize() schema.WorkspaceSnapshot {
	snap := schema.WorkspaceSnapshot{
		Tabs:           make([]schema.TabSnapshot, len(m.tabs)),
		ActiveTabIndex: m.activeTab,
	}
	for i, t := range m.tabs {
		snap.Tabs[i] = t.snapshot()
	}
	if len(m.metadata) > 0 {
		snap.Metadata = make(map[string]string, len(m.metadata))
		for k, v := range m.metadata {
			snap.Metadata[k] = v
		}
	}
	if len(m.widgetPrefs) > 0 {
		snap.WidgetPreferences = make(map[string]schema.ProviderID, len(m.widgetPrefs))
		for k, v := range m.widgetPrefs {
			snap.WidgetPreferences[k] = v
		}
	}
	return snap
}

// Restore replaces the workspace with the snapshot's state: the snapshot is
// validated, the current provider instances are torn down (the snapshot may
// reuse the same pane ids), and tabs are rebuilt in pre-order with fresh
// instances from the factory. When the factory fails partway the new
// instances are rolled back and the previous topology stays in place, with a
// best-effort recreate of its instances. Emits exactly one state_restored
// event at the end.
func (m *Model) Restore(snap schema.WorkspaceSnapshot) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	if err := schema.ValidateSnapshot(snap); err != nil {
		return err
	}
	// Build the new trees and check provider ids against the configured set
	// before any teardown, so a rejected snapshot leaves the workspace
	// untouched.
	roots := make([]*paneNode, len(snap.Tabs))
	for i, ts := range snap.Tabs {
		roots[i] = nodeFromSnapshot(ts.Tree)
		for _, p := range roots[i].leaves(nil) {
			if !m.KnowsProvider(p.provider) {
				return fmt.Errorf("%w: %s (pane %s)", schema.ErrUnknownProvider, p.provider, p.id)
			}
		}
	}
	for _, t := range m.tabs {
		m.destroyTree(t.root)
	}
	tabs := make([]*tab, len(snap.Tabs))
	var created []*pane
	for i, ts := range snap.Tabs {
		root := roots[i]
		for _, p := range root.leaves(nil) {
			if err := m.factory.Create(p.provider, p.instanceID()); err != nil {
				m.rollbackCreated(created)
				m.recreateInstances()
				return fmt.Errorf("restore pane %s: %w", p.id, err)
			}
			created = append(created, p)
		}
		tabs[i] = &tab{
			id:         ts.ID,
			name:       schema.NormalizeTabName(ts.Name),
			root:       root,
			activePane: ts.ActivePaneID,
		}
	}
	m.tabs = tabs
	m.activeTab = snap.ActiveTabIndex
	m.metadata = make(map[string]string, len(snap.Metadata))
	for k, v := range snap.Metadata {
		m.metadata[k] = v
	}
	m.widgetPrefs = make(map[string]schema.ProviderID, len(snap.WidgetPreferences))
	for k, v := range snap.WidgetPreferences {
		m.widgetPrefs[k] = v
	}
	m.log.Info("workspace restored", "tabs", len(tabs))
	m.notify(schema.EventStateRestored, schema.RestoreEvent{Tabs: len(tabs)}.Map())
	return nil
}

func (m *Model) recreateInstances() {
	for _, t := range m.tabs {
		t.root.eachLeafPostOrder(func(p *pane) {
			if err := m.factory.Create(p.provider, p.instanceID()); err != nil {
				m.log.Warn("restore recovery create failed", "pane", p.id, "err", err)
			}
		})
	}
}

func (m *Model) rollbackCreated(created []*pane) {
	for i := len(created) - 1; i >= 0; i-- {
		if err := m.factory.Destroy(created[i].instanceID()); err != nil {
			m.log.Warn("restore rollback destroy failed", "pane", created[i].id, "err", err)
		}
	}
}
