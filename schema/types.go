package schema

// TabID identifies a tab. IDs are unique for the process lifetime and never
// reused after the tab is closed.
type TabID string

// PaneID identifies a pane leaf. Unique for the process lifetime, never reused.
type PaneID string

// NodeID identifies a split node within a tab's layout tree.
type NodeID string

// ProviderID names a content-provider kind, e.g. "terminal" or "editor".
type ProviderID string

// InstanceID identifies a live content-provider instance. The workspace core
// creates exactly one instance per pane, keyed by the pane's id.
type InstanceID string

// Capability is a declared unit of provider behavior, dispatched by token
// rather than by concrete provider type.
type Capability string

const (
	// CapClearDisplay clears the provider's visible output.
	CapClearDisplay Capability = "clear-display"
	// CapClipboardCopy copies the provider's selection to the clipboard.
	CapClipboardCopy Capability = "clipboard-copy"
	// CapClipboardPaste pastes clipboard content into the provider.
	CapClipboardPaste Capability = "clipboard-paste"
	// CapTextEditing indicates the provider hosts an editable text buffer.
	CapTextEditing Capability = "text-editing"
	// CapShellExecution indicates the provider can run shell commands.
	CapShellExecution Capability = "shell-execution"
	// CapFileSaving writes the provider's content to disk.
	CapFileSaving Capability = "file-saving"
	// CapFindReplace searches and replaces within the provider's content.
	CapFindReplace Capability = "find-and-replace"
)

// Orientation describes how a split divides its area between two children.
type Orientation string

const (
	// OrientationHorizontal lays children out side by side (first left).
	OrientationHorizontal Orientation = "horizontal"
	// OrientationVertical stacks children (first on top).
	OrientationVertical Orientation = "vertical"
)

// Valid reports whether the orientation is a known value.
func (o Orientation) Valid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Direction is a spatial navigation direction between panes.
type Direction string

const (
	// DirectionUp navigates toward the top edge.
	DirectionUp Direction = "up"
	// DirectionDown navigates toward the bottom edge.
	DirectionDown Direction = "down"
	// DirectionLeft navigates toward the left edge.
	DirectionLeft Direction = "left"
	// DirectionRight navigates toward the right edge.
	DirectionRight Direction = "right"
)

// Valid reports whether the direction is a known value.
func (d Direction) Valid() bool {
	switch d {
	case DirectionUp, DirectionDown, DirectionLeft, DirectionRight:
		return true
	}
	return false
}

const (
	// MinSplitRatio is the exclusive lower bound for a split ratio.
	MinSplitRatio = 0.05
	// MaxSplitRatio is the exclusive upper bound for a split ratio.
	MaxSplitRatio = 0.95
	// DefaultSplitRatio divides a split evenly.
	DefaultSplitRatio = 0.5
	// RatioTolerance is the float tolerance for ratio round-trips.
	RatioTolerance = 1e-6
)
