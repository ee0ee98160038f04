// Package logx binds workspace identifiers onto structured loggers so log
// lines across packages carry consistent field names.
package logx

import (
	"context"

	"pkt.systems/panemux/schema"
	"pkt.systems/pslog"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithTab annotates the logger with a tab id when present.
func WithTab(log pslog.Logger, tabID schema.TabID) pslog.Logger {
	if tabID != "" {
		log = log.With("tab", tabID)
	}
	return log
}

// WithPane annotates the logger with a pane id when present.
func WithPane(log pslog.Logger, paneID schema.PaneID) pslog.Logger {
	if paneID != "" {
		log = log.With("pane", paneID)
	}
	return log
}

// WithTabPane annotates the logger with tab and pane identifiers.
func WithTabPane(log pslog.Logger, tabID schema.TabID, paneID schema.PaneID) pslog.Logger {
	return WithPane(WithTab(log, tabID), paneID)
}

// WithCommand annotates the logger with a command id when present.
func WithCommand(log pslog.Logger, commandID string) pslog.Logger {
	if commandID != "" {
		log = log.With("command", commandID)
	}
	return log
}
