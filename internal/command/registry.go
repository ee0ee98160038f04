// Package command is the single doorway for user-triggered intents: a
// registry of command handlers gated by when-expressions, and an executor
// that validates applicability against live workspace context before
// dispatching. Handlers may call only the workspace model and the capability
// registry, never presentation objects.
package command

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pkt.systems/panemux/internal/when"
	"pkt.systems/pslog"
)

var (
	// ErrDuplicateCommand indicates a command id was already registered.
	// Registration is rejected; the first registration stays active.
	ErrDuplicateCommand = errors.New("command id already registered")
	// ErrNotApplicable signals from inside a handler that the command does
	// not currently apply. The executor converts it to StatusNotApplicable.
	ErrNotApplicable = errors.New("command not applicable")
)

// HandlerFunc executes a command with its parameters and returns result data.
type HandlerFunc func(params map[string]any) (map[string]any, error)

type registration struct {
	id          string
	description string
	handler     HandlerFunc
	when        *when.Expr
}

// Registry holds registered commands. Like the rest of the core it is
// single-threaded by contract.
type Registry struct {
	byID map[string]*registration
	log  pslog.Logger
}

// NewRegistry constructs an empty command registry.
func NewRegistry(logger pslog.Logger) *Registry {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Registry{byID: make(map[string]*registration), log: logger}
}

// Option customizes a command registration.
type Option func(*registration) error

// WithWhen attaches a when-expression, compiled at registration time so a
// malformed expression fails the registration rather than every execution.
func WithWhen(expr string) Option {
	return func(r *registration) error {
		compiled, err := when.Parse(expr)
		if err != nil {
			return fmt.Errorf("when-expression for %s: %w", r.id, err)
		}
		r.when = compiled
		return nil
	}
}

// WithDescription attaches human-readable help text.
func WithDescription(text string) Option {
	return func(r *registration) error {
		r.description = text
		return nil
	}
}

// Register adds a command. A duplicate id is a registration error, never a
// silent overwrite.
func (r *Registry) Register(id string, handler HandlerFunc, opts ...Option) error {
	if id == "" {
		return errors.New("empty command id")
	}
	if handler == nil {
		return fmt.Errorf("command %s: nil handler", id)
	}
	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, id)
	}
	reg := &registration{id: id, handler: handler}
	for _, opt := range opts {
		if err := opt(reg); err != nil {
			return err
		}
	}
	r.byID[id] = reg
	r.log.Debug("command registered", "command", id)
	return nil
}

// Commands returns all registered command ids, sorted.
func (r *Registry) Commands() []string {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Description returns a command's help text.
func (r *Registry) Description(id string) (string, bool) {
	reg, ok := r.byID[id]
	if !ok {
		return "", false
	}
	return reg.description, true
}
