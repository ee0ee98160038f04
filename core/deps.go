package core

import (
	"pkt.systems/panemux/schema"
	"pkt.systems/pslog"
)

// ProviderFactory creates and destroys content-provider instances on behalf
// of the workspace core. Instances themselves are opaque: the core addresses
// them only by id, and any behavior beyond lifecycle goes through the
// capability registry.
type ProviderFactory interface {
	Create(provider schema.ProviderID, instance schema.InstanceID) error
	Destroy(instance schema.InstanceID) error
}

// ModelDeps captures dependencies for the workspace model.
type ModelDeps struct {
	Factory ProviderFactory
	Logger  pslog.Logger
}

// ModelConfig configures the workspace model.
type ModelConfig struct {
	// Providers lists the registered content-provider ids. Operations that
	// take a provider id validate against this set.
	Providers []schema.ProviderID
	// DefaultProvider is used when a provider id is omitted. Defaults to the
	// first entry of Providers.
	DefaultProvider schema.ProviderID
	// WidgetPreferences maps a context name to its preferred provider id.
	WidgetPreferences map[string]schema.ProviderID
	// Metadata seeds the workspace metadata map.
	Metadata map[string]string
}
