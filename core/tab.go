package core

import "pkt.systems/panemux/schema"

// tab is a named top-level container owning exactly one pane tree. The
// maximized marker is transient and never serialized.
type tab struct {
	id         schema.TabID
	name       string
	root       *paneNode
	activePane schema.PaneID
	maximized  schema.PaneID
}

func (t *tab) snapshot() schema.TabSnapshot {
	return schema.TabSnapshot{
		ID:           t.id,
		Name:         t.name,
		ActivePaneID: t.activePane,
		Tree:         t.root.snapshot(),
	}
}
