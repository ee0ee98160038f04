// Package capability maps content-provider instances to their declared
// capability tokens and per-capability executors. Callers dispatch by
// capability; no concrete provider type ever crosses this boundary.
package capability

import (
	"context"
	"fmt"

	"pkt.systems/panemux/schema"
	"pkt.systems/pslog"
)

// ExecutorFunc runs one capability with keyword-style arguments and returns
// the provider's result.
type ExecutorFunc func(args map[string]any) (any, error)

type entry struct {
	capabilities []schema.Capability
	executors    map[schema.Capability]ExecutorFunc
}

// Registry tracks live provider instances and their capabilities. Like the
// workspace model it is single-threaded by contract; registration order is
// preserved and drives FindWithCapability.
type Registry struct {
	order   []schema.InstanceID
	entries map[schema.InstanceID]*entry
	log     pslog.Logger
}

// NewRegistry constructs an empty capability registry.
func NewRegistry(logger pslog.Logger) *Registry {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Registry{
		entries: make(map[schema.InstanceID]*entry),
		log:     logger,
	}
}

// RegisterProvider declares an instance's capabilities and their executors.
// Every declared capability needs an executor; re-registering an instance id
// replaces its previous declaration in place.
func (r *Registry) RegisterProvider(id schema.InstanceID, capabilities []schema.Capability, executors map[schema.Capability]ExecutorFunc) error {
	if id == "" {
		return fmt.Errorf("%w: empty instance id", schema.ErrValidation)
	}
	declared := make([]schema.Capability, 0, len(capabilities))
	seen := make(map[schema.Capability]struct{}, len(capabilities))
	for _, cap := range capabilities {
		if _, dup := seen[cap]; dup {
			continue
		}
		if executors[cap] == nil {
			return fmt.Errorf("%w: capability %s declared without executor", schema.ErrValidation, cap)
		}
		seen[cap] = struct{}{}
		declared = append(declared, cap)
	}
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	execs := make(map[schema.Capability]ExecutorFunc, len(declared))
	for _, cap := range declared {
		execs[cap] = executors[cap]
	}
	r.entries[id] = &entry{capabilities: declared, executors: execs}
	r.log.Debug("provider registered", "instance", id, "capabilities", len(declared))
	return nil
}

// UnregisterProvider removes an instance. Unknown ids are a no-op.
func (r *Registry) UnregisterProvider(id schema.InstanceID) {
	if _, ok := r.entries[id]; !ok {
		return
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.log.Debug("provider unregistered", "instance", id)
}

// Has reports whether an instance declared a capability.
func (r *Registry) Has(id schema.InstanceID, cap schema.Capability) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	_, ok = e.executors[cap]
	return ok
}

// CapabilitiesOf returns an instance's declared capabilities in declaration
// order. Nil for unknown instances.
func (r *Registry) CapabilitiesOf(id schema.InstanceID) []schema.Capability {
	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	out := make([]schema.Capability, len(e.capabilities))
	copy(out, e.capabilities)
	return out
}

// FindWithCapability returns the instances declaring a capability, in
// registration order.
func (r *Registry) FindWithCapability(cap schema.Capability) []schema.InstanceID {
	var out []schema.InstanceID
	for _, id := range r.order {
		if r.Has(id, cap) {
			out = append(out, id)
		}
	}
	return out
}

// Execute dispatches a capability on an instance. An undeclared capability
// fails with CapabilityNotSupportedError; a failing provider handler is
// wrapped in CapabilityExecutionError. Workspace state is unaffected either
// way.
func (r *Registry) Execute(id schema.InstanceID, cap schema.Capability, args map[string]any) (any, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, &schema.CapabilityNotSupportedError{Instance: id, Capability: cap}
	}
	exec, ok := e.executors[cap]
	if !ok {
		return nil, &schema.CapabilityNotSupportedError{Instance: id, Capability: cap}
	}
	result, err := exec(args)
	if err != nil {
		r.log.Warn("capability execution failed", "instance", id, "capability", cap, "err", err)
		return nil, &schema.CapabilityExecutionError{Instance: id, Capability: cap, Err: err}
	}
	return result, nil
}
