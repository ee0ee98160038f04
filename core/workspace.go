package core

import (
	"context"
	"errors"

	"pkt.systems/panemux/schema"
	"pkt.systems/pslog"
)

// Model is the sole owner and mutator of workspace state. Every mutation is
// synchronous, validates its preconditions before touching the tree, and
// reports failure through a typed error rather than a panic.
//
// The model is single-threaded by contract: all mutations, queries, and
// observer notifications run on one logical thread. There is no locking;
// ordering comes purely from that serialization. A mutation attempted while
// an observer notification is still in flight is rejected with
// schema.ErrMutationInProgress.
type Model struct {
	factory         ProviderFactory
	log             pslog.Logger
	providers       map[schema.ProviderID]struct{}
	defaultProvider schema.ProviderID

	tabs        []*tab
	activeTab   int
	metadata    map[string]string
	widgetPrefs map[string]schema.ProviderID

	observers  []observerEntry
	nextObsID  int
	inMutation bool
}

// NewModel constructs a workspace model with no tabs. The factory is
// required; at least one provider id must be configured.
func NewModel(cfg ModelConfig, deps ModelDeps) (*Model, error) {
	if deps.Factory == nil {
		return nil, errors.New("provider factory is required")
	}
	if len(cfg.Providers) == 0 && cfg.DefaultProvider == "" {
		return nil, errors.New("at least one provider id is required")
	}
	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = cfg.Providers[0]
	}
	providers := make(map[schema.ProviderID]struct{}, len(cfg.Providers)+1)
	for _, id := range cfg.Providers {
		providers[id] = struct{}{}
	}
	providers[cfg.DefaultProvider] = struct{}{}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	metadata := make(map[string]string, len(cfg.Metadata))
	for k, v := range cfg.Metadata {
		metadata[k] = v
	}
	prefs := make(map[string]schema.ProviderID, len(cfg.WidgetPreferences))
	for k, v := range cfg.WidgetPreferences {
		prefs[k] = v
	}
	return &Model{
		factory:         deps.Factory,
		log:             logger,
		providers:       providers,
		defaultProvider: cfg.DefaultProvider,
		activeTab:       -1,
		metadata:        metadata,
		widgetPrefs:     prefs,
	}, nil
}

// begin marks a mutation in progress. Observer callbacks run before end, so
// a subscriber that re-enters with a further mutation is caught here.
func (m *Model) begin() error {
	if m.inMutation {
		return schema.ErrMutationInProgress
	}
	m.inMutation = true
	return nil
}

func (m *Model) end() { m.inMutation = false }

// KnowsProvider reports whether the provider id is registered.
func (m *Model) KnowsProvider(id schema.ProviderID) bool {
	_, ok := m.providers[id]
	return ok
}

// DefaultProvider returns the provider used when none is specified.
func (m *Model) DefaultProvider() schema.ProviderID { return m.defaultProvider }

// TabCount returns the number of tabs.
func (m *Model) TabCount() int { return len(m.tabs) }

// TabIDs returns tab ids in display order.
func (m *Model) TabIDs() []schema.TabID {
	ids := make([]schema.TabID, len(m.tabs))
	for i, t := range m.tabs {
		ids[i] = t.id
	}
	return ids
}

// TabName returns the display name of a tab.
func (m *Model) TabName(id schema.TabID) (string, bool) {
	if t := m.findTab(id); t != nil {
		return t.name, true
	}
	return "", false
}

// ActiveTab returns the active tab id, if any tab exists.
func (m *Model) ActiveTab() (schema.TabID, bool) {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return "", false
	}
	return m.tabs[m.activeTab].id, true
}

// ActivePane returns the active pane of the active tab.
func (m *Model) ActivePane() (schema.PaneID, bool) {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return "", false
	}
	return m.tabs[m.activeTab].activePane, true
}

// Panes returns the pane ids of a tab in pre-order.
func (m *Model) Panes(tabID schema.TabID) ([]schema.PaneID, error) {
	t := m.findTab(tabID)
	if t == nil {
		return nil, schema.ErrTabNotFound
	}
	panes := t.root.leaves(nil)
	ids := make([]schema.PaneID, len(panes))
	for i, p := range panes {
		ids[i] = p.id
	}
	return ids, nil
}

// PaneCount returns the number of panes in the active tab, or zero when the
// workspace is empty.
func (m *Model) PaneCount() int {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return 0
	}
	return m.tabs[m.activeTab].root.countLeaves()
}

// PaneProvider returns the provider id hosted by a pane.
func (m *Model) PaneProvider(id schema.PaneID) (schema.ProviderID, bool) {
	if _, node := m.findPane(id); node != nil {
		return node.leaf.provider, true
	}
	return "", false
}

// MaximizedPane returns the maximized pane of the active tab, if set.
func (m *Model) MaximizedPane() (schema.PaneID, bool) {
	if m.activeTab < 0 || m.activeTab >= len(m.tabs) {
		return "", false
	}
	t := m.tabs[m.activeTab]
	if t.maximized == "" {
		return "", false
	}
	return t.maximized, true
}

// WidgetPreference returns the preferred provider for a context name.
func (m *Model) WidgetPreference(context string) (schema.ProviderID, bool) {
	id, ok := m.widgetPrefs[context]
	return id, ok
}

// SetWidgetPreference records the preferred provider for a context name.
func (m *Model) SetWidgetPreference(context string, provider schema.ProviderID) error {
	if !m.KnowsProvider(provider) {
		return schema.ErrUnknownProvider
	}
	m.widgetPrefs[context] = provider
	return nil
}

// Metadata returns the value stored under a metadata key.
func (m *Model) Metadata(key string) (string, bool) {
	v, ok := m.metadata[key]
	return v, ok
}

// SetMetadata stores a workspace metadata entry.
func (m *Model) SetMetadata(key, value string) {
	m.metadata[key] = value
}

func (m *Model) findTab(id schema.TabID) *tab {
	for _, t := range m.tabs {
		if t.id == id {
			return t
		}
	}
	return nil
}

func (m *Model) tabIndex(id schema.TabID) int {
	for i, t := range m.tabs {
		if t.id == id {
			return i
		}
	}
	return -1
}

// findPane locates a pane's leaf node across all tabs.
func (m *Model) findPane(id schema.PaneID) (*tab, *paneNode) {
	for _, t := range m.tabs {
		if node := t.root.findLeaf(id); node != nil {
			return t, node
		}
	}
	return nil, nil
}
