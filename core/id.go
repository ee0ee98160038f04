package core

import (
	"github.com/google/uuid"

	"pkt.systems/panemux/schema"
)

// IDs are unique for the process lifetime and never reused after deletion.

func newTabID() schema.TabID {
	return schema.TabID("tab-" + uuid.NewString())
}

func newPaneID() schema.PaneID {
	return schema.PaneID("pane-" + uuid.NewString())
}

func newNodeID() schema.NodeID {
	return schema.NodeID("split-" + uuid.NewString())
}
