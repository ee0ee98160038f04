package command

import (
	"context"
	"errors"
	"fmt"

	"pkt.systems/panemux/internal/logx"
	"pkt.systems/panemux/internal/when"
	"pkt.systems/pslog"
)

// Status is the outcome class of a command execution.
type Status string

const (
	// StatusSuccess indicates the handler ran and succeeded.
	StatusSuccess Status = "success"
	// StatusFailure indicates the command is unknown or its handler failed.
	StatusFailure Status = "failure"
	// StatusNotApplicable indicates the command exists but its
	// when-expression evaluated false in the current context. Distinct from
	// failure.
	StatusNotApplicable Status = "not_applicable"
)

// Result is the typed outcome of Execute. No error ever propagates past it.
type Result struct {
	Status  Status
	Message string
	Data    map[string]any
}

// Executor dispatches commands from the registry, gating each one on its
// when-expression evaluated against the live context resolver.
type Executor struct {
	registry *Registry
	resolver when.Resolver
	log      pslog.Logger
}

// NewExecutor constructs an executor over a registry and a context resolver.
func NewExecutor(registry *Registry, resolver when.Resolver, logger pslog.Logger) *Executor {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Executor{registry: registry, resolver: resolver, log: logger}
}

// Execute runs a command by id. Unknown ids fail; a false when-expression
// yields StatusNotApplicable; handler errors and panics are converted to
// StatusFailure carrying the message. Nothing escapes as an error or panic.
func (e *Executor) Execute(id string, params map[string]any) Result {
	log := logx.WithCommand(e.log, id)
	reg, ok := e.registry.byID[id]
	if !ok {
		log.Debug("command not found")
		return Result{Status: StatusFailure, Message: fmt.Sprintf("command not found: %s", id)}
	}
	if reg.when != nil {
		applicable, err := reg.when.Eval(e.resolver)
		if err != nil {
			log.Warn("when-expression evaluation failed", "err", err)
			return Result{Status: StatusFailure, Message: fmt.Sprintf("when-expression: %v", err)}
		}
		if !applicable {
			log.Debug("command not applicable", "when", reg.when.String())
			return Result{Status: StatusNotApplicable, Message: fmt.Sprintf("not applicable: %s", reg.when.String())}
		}
	}
	return e.invoke(log, reg, params)
}

func (e *Executor) invoke(log pslog.Logger, reg *registration, params map[string]any) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("command handler panicked", "err", r)
			result = Result{Status: StatusFailure, Message: fmt.Sprintf("command %s panicked: %v", reg.id, r)}
		}
	}()
	data, err := reg.handler(params)
	if err != nil {
		if errors.Is(err, ErrNotApplicable) {
			return Result{Status: StatusNotApplicable, Message: err.Error()}
		}
		log.Debug("command failed", "err", err)
		return Result{Status: StatusFailure, Message: err.Error()}
	}
	log.Debug("command executed")
	return Result{Status: StatusSuccess, Data: data}
}
