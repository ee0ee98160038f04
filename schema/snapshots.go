package schema

import "encoding/json"

// Node types in a serialized layout tree.
const (
	// NodeTypeLeaf marks a leaf node carrying a pane.
	NodeTypeLeaf = "leaf"
	// NodeTypeSplit marks a two-child split node.
	NodeTypeSplit = "split"
)

// PaneSnapshot is the serialized form of a pane leaf.
type PaneSnapshot struct {
	ID            PaneID          `json:"id"`
	ProviderID    ProviderID      `json:"provider_id"`
	ProviderState json.RawMessage `json:"provider_state,omitempty"`
}

// NodeSnapshot is the serialized form of one layout-tree node.
type NodeSnapshot struct {
	Type        string        `json:"type"`
	Pane        *PaneSnapshot `json:"pane,omitempty"`
	Orientation Orientation   `json:"orientation,omitempty"`
	Ratio       float64       `json:"ratio,omitempty"`
	First       *NodeSnapshot `json:"first,omitempty"`
	Second      *NodeSnapshot `json:"second,omitempty"`
}

// TabSnapshot is the serialized form of a tab and its layout tree.
type TabSnapshot struct {
	ID           TabID         `json:"id"`
	Name         string        `json:"name"`
	ActivePaneID PaneID        `json:"active_pane_id"`
	Tree         *NodeSnapshot `json:"tree"`
}

// WorkspaceSnapshot is the serialized form of the whole workspace. It
// round-trips through serialize/restore without loss of topology, ids, or
// ratios (within RatioTolerance).
type WorkspaceSnapshot struct {
	Tabs              []TabSnapshot         `json:"tabs"`
	ActiveTabIndex    int                   `json:"active_tab_index"`
	Metadata          map[string]string     `json:"metadata,omitempty"`
	WidgetPreferences map[string]ProviderID `json:"widget_preferences,omitempty"`
}
