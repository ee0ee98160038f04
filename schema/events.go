package schema

// EventType names a workspace mutation event delivered to observers.
type EventType string

const (
	// EventTabAdded indicates a tab was appended to the workspace.
	EventTabAdded EventType = "tab_added"
	// EventTabClosed indicates a tab and its panes were torn down.
	EventTabClosed EventType = "tab_closed"
	// EventPaneAdded indicates a new pane leaf was created.
	EventPaneAdded EventType = "pane_added"
	// EventPaneRemoved indicates a pane leaf was removed.
	EventPaneRemoved EventType = "pane_removed"
	// EventActivePaneChanged indicates the active pane of a tab changed.
	EventActivePaneChanged EventType = "active_pane_changed"
	// EventActiveTabChanged indicates the active tab changed.
	EventActiveTabChanged EventType = "active_tab_changed"
	// EventTreeStructureChanged indicates a tab's layout tree changed shape
	// or ratios.
	EventTreeStructureChanged EventType = "tree_structure_changed"
	// EventPaneMaximized indicates the transient maximize marker toggled.
	EventPaneMaximized EventType = "pane_maximized"
	// EventPaneContentChanged indicates a pane swapped content providers.
	EventPaneContentChanged EventType = "pane_content_changed"
	// EventStateRestored indicates the workspace was rebuilt from a
	// snapshot. Emitted exactly once per restore.
	EventStateRestored EventType = "state_restored"
)

// TabEvent is the payload for tab lifecycle events.
type TabEvent struct {
	TabID TabID
	Name  string
}

// Map renders the payload for the observer callback.
func (e TabEvent) Map() map[string]any {
	return map[string]any{"tab_id": e.TabID, "name": e.Name}
}

// PaneEvent is the payload for pane lifecycle events.
type PaneEvent struct {
	TabID      TabID
	PaneID     PaneID
	ProviderID ProviderID
}

// Map renders the payload for the observer callback.
func (e PaneEvent) Map() map[string]any {
	return map[string]any{"tab_id": e.TabID, "pane_id": e.PaneID, "provider_id": e.ProviderID}
}

// ActivePaneEvent is the payload for active-pane changes.
type ActivePaneEvent struct {
	TabID  TabID
	PaneID PaneID
}

// Map renders the payload for the observer callback.
func (e ActivePaneEvent) Map() map[string]any {
	return map[string]any{"tab_id": e.TabID, "pane_id": e.PaneID}
}

// TreeEvent is the payload for layout structure changes.
type TreeEvent struct {
	TabID TabID
}

// Map renders the payload for the observer callback.
func (e TreeEvent) Map() map[string]any {
	return map[string]any{"tab_id": e.TabID}
}

// MaximizeEvent is the payload for maximize/restore toggles.
type MaximizeEvent struct {
	TabID     TabID
	PaneID    PaneID
	Maximized bool
}

// Map renders the payload for the observer callback.
func (e MaximizeEvent) Map() map[string]any {
	return map[string]any{"tab_id": e.TabID, "pane_id": e.PaneID, "maximized": e.Maximized}
}

// RestoreEvent is the payload for a completed snapshot restore.
type RestoreEvent struct {
	Tabs int
}

// Map renders the payload for the observer callback.
func (e RestoreEvent) Map() map[string]any {
	return map[string]any{"tabs": e.Tabs}
}
