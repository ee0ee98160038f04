package command

import (
	"strings"

	"pkt.systems/panemux/core"
	"pkt.systems/panemux/internal/capability"
	"pkt.systems/panemux/schema"
)

// Context resolves when-expression variables lazily from live workspace
// state. Nothing is precomputed; each lookup reads the model at evaluation
// time, so expressions always see the current state. Lookups are pure reads.
//
// Variables:
//
//	tabCount        number of tabs
//	paneCount       number of panes in the active tab
//	hasActivePane   whether any pane is active
//	activeProvider  provider id of the active pane ("" when none)
//	maximized       whether the active tab has a maximized pane
//	capability.<token>  whether the active pane's instance declared <token>
type Context struct {
	model *core.Model
	caps  *capability.Registry
}

// NewContext builds a resolver over the model and capability registry.
func NewContext(model *core.Model, caps *capability.Registry) *Context {
	return &Context{model: model, caps: caps}
}

// Lookup implements when.Resolver.
func (c *Context) Lookup(name string) (any, bool) {
	switch name {
	case "tabCount":
		return float64(c.model.TabCount()), true
	case "paneCount":
		return float64(c.model.PaneCount()), true
	case "hasActivePane":
		_, ok := c.model.ActivePane()
		return ok, true
	case "activeProvider":
		pane, ok := c.model.ActivePane()
		if !ok {
			return "", true
		}
		provider, _ := c.model.PaneProvider(pane)
		return string(provider), true
	case "maximized":
		_, ok := c.model.MaximizedPane()
		return ok, true
	}
	if token, found := strings.CutPrefix(name, "capability."); found {
		pane, ok := c.model.ActivePane()
		if !ok {
			return false, true
		}
		return c.caps.Has(schema.InstanceID(pane), schema.Capability(token)), true
	}
	return nil, false
}
