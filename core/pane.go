package core

import (
	"encoding/json"

	"pkt.systems/panemux/schema"
)

// pane is a single leaf content slot. The provider-state blob is opaque to
// the core and travels untouched through serialize/restore.
type pane struct {
	id       schema.PaneID
	provider schema.ProviderID
	state    json.RawMessage
}

func newPane(provider schema.ProviderID) *pane {
	return &pane{id: newPaneID(), provider: provider}
}

func (p *pane) instanceID() schema.InstanceID {
	return schema.InstanceID(p.id)
}

func (p *pane) snapshot() *schema.PaneSnapshot {
	return &schema.PaneSnapshot{
		ID:            p.id,
		ProviderID:    p.provider,
		ProviderState: append(json.RawMessage(nil), p.state...),
	}
}
