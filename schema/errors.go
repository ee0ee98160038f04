package schema

import (
	"errors"
	"fmt"
)

// Error categories. Specific errors wrap one of these so callers can match
// either the category (errors.Is(err, ErrValidation)) or the exact error.
var (
	// ErrValidation indicates malformed input; state is unchanged.
	ErrValidation = errors.New("validation error")
	// ErrInvariant indicates the operation would break a structural
	// invariant; it is rejected before any mutation.
	ErrInvariant = errors.New("invariant violation")
)

var (
	// ErrTabNotFound indicates the requested tab does not exist.
	ErrTabNotFound = fmt.Errorf("%w: tab not found", ErrValidation)
	// ErrPaneNotFound indicates the requested pane does not exist.
	ErrPaneNotFound = fmt.Errorf("%w: pane not found", ErrValidation)
	// ErrNodeNotFound indicates the requested split node does not exist.
	ErrNodeNotFound = fmt.Errorf("%w: split node not found", ErrValidation)
	// ErrUnknownProvider indicates the provider id is not registered.
	ErrUnknownProvider = fmt.Errorf("%w: unknown provider", ErrValidation)
	// ErrInvalidOrientation indicates an unrecognized split orientation.
	ErrInvalidOrientation = fmt.Errorf("%w: invalid orientation", ErrValidation)
	// ErrInvalidDirection indicates an unrecognized navigation direction.
	ErrInvalidDirection = fmt.Errorf("%w: invalid direction", ErrValidation)
	// ErrInvalidSnapshot indicates a snapshot failed structural validation.
	ErrInvalidSnapshot = fmt.Errorf("%w: invalid snapshot", ErrValidation)
	// ErrLastTab indicates a refusal to close the only remaining tab.
	ErrLastTab = fmt.Errorf("%w: cannot close last tab", ErrInvariant)
	// ErrLastPane indicates a refusal to close a tab's sole pane.
	ErrLastPane = fmt.Errorf("%w: cannot close sole pane, close the tab instead", ErrInvariant)
	// ErrPaneNotInActiveTab indicates a focus target outside the active tab.
	ErrPaneNotInActiveTab = fmt.Errorf("%w: pane not in active tab", ErrValidation)
	// ErrMutationInProgress indicates an observer attempted to mutate the
	// workspace while a notification was still in flight.
	ErrMutationInProgress = fmt.Errorf("%w: mutation already in progress", ErrInvariant)
)

// CapabilityNotSupportedError reports a capability the target instance never
// declared.
type CapabilityNotSupportedError struct {
	Instance   InstanceID
	Capability Capability
}

func (e *CapabilityNotSupportedError) Error() string {
	return fmt.Sprintf("instance %s does not support capability %s", e.Instance, e.Capability)
}

// CapabilityExecutionError wraps a failure raised by the provider's own
// capability handler. Workspace state itself is unaffected.
type CapabilityExecutionError struct {
	Instance   InstanceID
	Capability Capability
	Err        error
}

func (e *CapabilityExecutionError) Error() string {
	return fmt.Sprintf("capability %s failed on instance %s: %v", e.Capability, e.Instance, e.Err)
}

// Unwrap exposes the provider's original error.
func (e *CapabilityExecutionError) Unwrap() error { return e.Err }
