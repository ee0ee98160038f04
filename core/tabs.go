package core

import (
	"fmt"

	"pkt.systems/panemux/internal/logx"
	"pkt.systems/panemux/schema"
)

// CreateTab appends a new tab holding a single root pane and activates it.
// An empty provider id selects the default provider. Notifies tab_added.
func (m *Model) CreateTab(name string, provider schema.ProviderID) (schema.TabID, error) {
	if err := m.begin(); err != nil {
		return "", err
	}
	defer m.end()
	if provider == "" {
		provider = m.defaultProvider
	}
	if !m.KnowsProvider(provider) {
		return "", fmt.Errorf("%w: %s", schema.ErrUnknownProvider, provider)
	}
	p := newPane(provider)
	if err := m.factory.Create(provider, p.instanceID()); err != nil {
		m.log.Warn("tab create failed", "provider", provider, "err", err)
		return "", fmt.Errorf("create provider instance: %w", err)
	}
	t := &tab{
		id:         newTabID(),
		name:       schema.NormalizeTabName(name),
		root:       &paneNode{leaf: p},
		activePane: p.id,
	}
	m.tabs = append(m.tabs, t)
	m.activeTab = len(m.tabs) - 1
	logx.WithTabPane(m.log, t.id, p.id).Info("tab created", "name", t.name, "provider", provider)
	m.notify(schema.EventTabAdded, schema.TabEvent{TabID: t.id, Name: t.name}.Map())
	return t.id, nil
}

// CloseTab removes a tab and tears down every pane's provider instance in
// post-order. Refuses to close the only remaining tab. Notifies tab_closed.
func (m *Model) CloseTab(tabID schema.TabID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	idx := m.tabIndex(tabID)
	if idx < 0 {
		return schema.ErrTabNotFound
	}
	if len(m.tabs) == 1 {
		return schema.ErrLastTab
	}
	t := m.tabs[idx]
	m.destroyTree(t.root)
	m.tabs = append(m.tabs[:idx], m.tabs[idx+1:]...)
	switch {
	case m.activeTab > idx:
		m.activeTab--
	case m.activeTab == idx:
		if m.activeTab >= len(m.tabs) {
			m.activeTab = len(m.tabs) - 1
		}
	}
	logx.WithTab(m.log, t.id).Info("tab closed", "name", t.name)
	m.notify(schema.EventTabClosed, schema.TabEvent{TabID: t.id, Name: t.name}.Map())
	return nil
}

// ActivateTab makes a tab the active one. Notifies active_tab_changed.
func (m *Model) ActivateTab(tabID schema.TabID) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	idx := m.tabIndex(tabID)
	if idx < 0 {
		return schema.ErrTabNotFound
	}
	if idx == m.activeTab {
		return nil
	}
	m.activeTab = idx
	t := m.tabs[idx]
	m.notify(schema.EventActiveTabChanged, schema.TabEvent{TabID: t.id, Name: t.name}.Map())
	return nil
}

// RenameTab updates a tab's display name.
func (m *Model) RenameTab(tabID schema.TabID, name string) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()
	t := m.findTab(tabID)
	if t == nil {
		return schema.ErrTabNotFound
	}
	t.name = schema.NormalizeTabName(name)
	return nil
}

// destroyTree tears down provider instances for every pane, children first.
// Factory failures are logged and skipped; teardown keeps going.
func (m *Model) destroyTree(root *paneNode) {
	root.eachLeafPostOrder(func(p *pane) {
		if err := m.factory.Destroy(p.instanceID()); err != nil {
			m.log.Warn("provider destroy failed", "pane", p.id, "provider", p.provider, "err", err)
		}
	})
}
