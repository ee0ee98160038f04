package command

import (
	"errors"
	"fmt"

	"pkt.systems/panemux/core"
	"pkt.systems/panemux/internal/capability"
	"pkt.systems/panemux/schema"
)

// RegisterBuiltins installs the standard workspace command set. Handlers talk
// only to the model and the capability registry.
func RegisterBuiltins(reg *Registry, model *core.Model, caps *capability.Registry) error {
	b := &builtins{model: model, caps: caps}
	for _, c := range b.commands() {
		if err := reg.Register(c.id, c.handler, c.opts...); err != nil {
			return err
		}
	}
	return nil
}

type builtins struct {
	model *core.Model
	caps  *capability.Registry
}

type builtinCommand struct {
	id      string
	handler HandlerFunc
	opts    []Option
}

func (b *builtins) commands() []builtinCommand {
	return []builtinCommand{
		{
			id:      "workbench.newTab",
			handler: b.newTab,
			opts:    []Option{WithDescription("Create a new tab with a single pane")},
		},
		{
			id:      "tab.close",
			handler: b.closeTab,
			opts: []Option{
				WithDescription("Close a tab and tear down its panes"),
				WithWhen("tabCount > 1"),
			},
		},
		{
			id:      "tab.activate",
			handler: b.activateTab,
			opts:    []Option{WithDescription("Make a tab the active one")},
		},
		{
			id:      "tab.rename",
			handler: b.renameTab,
			opts:    []Option{WithDescription("Rename a tab")},
		},
		{
			id:      "pane.split",
			handler: b.splitPane,
			opts: []Option{
				WithDescription("Split a pane in two along an orientation"),
				WithWhen("hasActivePane"),
			},
		},
		{
			id:      "pane.close",
			handler: b.closePane,
			opts:    []Option{WithDescription("Close a pane and promote its sibling")},
		},
		{
			id:      "pane.focus",
			handler: b.focusPane,
			opts:    []Option{WithDescription("Focus a pane in the active tab")},
		},
		{
			id:      "pane.navigate",
			handler: b.navigate,
			opts: []Option{
				WithDescription("Move focus to the spatial neighbor in a direction"),
				WithWhen("paneCount > 1"),
			},
		},
		{
			id:      "pane.maximize",
			handler: b.maximizePane,
			opts: []Option{
				WithDescription("Maximize a pane within its tab"),
				WithWhen("hasActivePane && !maximized"),
			},
		},
		{
			id:      "pane.restore",
			handler: b.restorePane,
			opts: []Option{
				WithDescription("Restore the maximized pane"),
				WithWhen("maximized"),
			},
		},
		{
			id:      "pane.evenSizes",
			handler: b.evenSizes,
			opts:    []Option{WithDescription("Reset every split in a tab to an even ratio")},
		},
		{
			id:      "pane.resize",
			handler: b.resizePane,
			opts:    []Option{WithDescription("Set the ratio of the split directly above a pane")},
		},
		{
			id:      "pane.extractToTab",
			handler: b.extractToTab,
			opts:    []Option{WithDescription("Move a pane into a new tab of its own")},
		},
		{
			id:      "pane.changeWidgetType",
			handler: b.changeWidgetType,
			opts:    []Option{WithDescription("Swap the content provider hosted by a pane")},
		},
		{
			id:      "terminal.clear",
			handler: b.capabilityHandler(schema.CapClearDisplay, nil),
			opts: []Option{
				WithDescription("Clear the target terminal's display"),
				WithWhen("hasActivePane"),
			},
		},
		{
			id:      "clipboard.copy",
			handler: b.capabilityHandler(schema.CapClipboardCopy, nil),
			opts:    []Option{WithDescription("Copy the target pane's selection")},
		},
		{
			id:      "clipboard.paste",
			handler: b.capabilityHandler(schema.CapClipboardPaste, nil),
			opts:    []Option{WithDescription("Paste into the target pane")},
		},
		{
			id:      "editor.save",
			handler: b.capabilityHandler(schema.CapFileSaving, nil),
			opts: []Option{
				WithDescription("Save the target editor's content"),
				WithWhen("capability.file-saving"),
			},
		},
		{
			id:      "editor.findReplace",
			handler: b.capabilityHandler(schema.CapFindReplace, nil),
			opts:    []Option{WithDescription("Find and replace in the target editor")},
		},
	}
}

func (b *builtins) newTab(params map[string]any) (map[string]any, error) {
	name, _ := stringParam(params, "name")
	widget, _ := stringParam(params, "widget_id")
	tabID, err := b.model.CreateTab(name, schema.ProviderID(widget))
	if err != nil {
		return nil, err
	}
	return map[string]any{"tab_id": tabID}, nil
}

func (b *builtins) closeTab(params map[string]any) (map[string]any, error) {
	tabID, err := b.tabTarget(params)
	if err != nil {
		return nil, err
	}
	if err := b.model.CloseTab(tabID); err != nil {
		return nil, err
	}
	return map[string]any{"tab_id": tabID}, nil
}

func (b *builtins) activateTab(params map[string]any) (map[string]any, error) {
	tabID, ok := stringParam(params, "tab_id")
	if !ok {
		return nil, fmt.Errorf("tab_id is required")
	}
	if err := b.model.ActivateTab(schema.TabID(tabID)); err != nil {
		return nil, err
	}
	return map[string]any{"tab_id": tabID}, nil
}

func (b *builtins) renameTab(params map[string]any) (map[string]any, error) {
	name, ok := stringParam(params, "name")
	if !ok {
		return nil, fmt.Errorf("name is required")
	}
	tabID, err := b.tabTarget(params)
	if err != nil {
		return nil, err
	}
	if err := b.model.RenameTab(tabID, name); err != nil {
		return nil, err
	}
	return map[string]any{"tab_id": tabID}, nil
}

func (b *builtins) splitPane(params map[string]any) (map[string]any, error) {
	paneID, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	orientation := schema.OrientationHorizontal
	if s, ok := stringParam(params, "orientation"); ok {
		orientation = schema.Orientation(s)
	}
	ratio, _ := numberParam(params, "ratio")
	widget, _ := stringParam(params, "widget_id")
	newPane, err := b.model.SplitPane(paneID, orientation, ratio, schema.ProviderID(widget))
	if err != nil {
		return nil, err
	}
	return map[string]any{"pane_id": newPane}, nil
}

// closePane is not gated on the active tab's pane count: an explicit pane_id
// may target any tab, so applicability hinges on the target's own tab.
func (b *builtins) closePane(params map[string]any) (map[string]any, error) {
	paneID, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	if err := b.model.ClosePane(paneID); err != nil {
		if errors.Is(err, schema.ErrLastPane) {
			return nil, fmt.Errorf("%w: %s", ErrNotApplicable, err)
		}
		return nil, err
	}
	return map[string]any{"pane_id": paneID}, nil
}

func (b *builtins) focusPane(params map[string]any) (map[string]any, error) {
	pane, ok := stringParam(params, "pane_id")
	if !ok {
		return nil, fmt.Errorf("pane_id is required")
	}
	if err := b.model.FocusPane(schema.PaneID(pane)); err != nil {
		return nil, err
	}
	return map[string]any{"pane_id": pane}, nil
}

func (b *builtins) navigate(params map[string]any) (map[string]any, error) {
	dirText, ok := stringParam(params, "direction")
	if !ok {
		return nil, fmt.Errorf("direction is required")
	}
	dir := schema.Direction(dirText)
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: %q", schema.ErrInvalidDirection, dirText)
	}
	from, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	target, found := b.model.Navigate(from, dir)
	if !found {
		return map[string]any{"found": false}, nil
	}
	if err := b.model.FocusPane(target); err != nil {
		return nil, err
	}
	return map[string]any{"found": true, "pane_id": target}, nil
}

func (b *builtins) maximizePane(params map[string]any) (map[string]any, error) {
	paneID, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	if err := b.model.MaximizePane(paneID); err != nil {
		return nil, err
	}
	return map[string]any{"pane_id": paneID}, nil
}

func (b *builtins) restorePane(map[string]any) (map[string]any, error) {
	if err := b.model.RestorePane(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (b *builtins) evenSizes(params map[string]any) (map[string]any, error) {
	tabID, err := b.tabTarget(params)
	if err != nil {
		return nil, err
	}
	if err := b.model.EvenPaneSizes(tabID); err != nil {
		return nil, err
	}
	return map[string]any{"tab_id": tabID}, nil
}

func (b *builtins) resizePane(params map[string]any) (map[string]any, error) {
	ratio, ok := numberParam(params, "ratio")
	if !ok {
		return nil, fmt.Errorf("ratio is required")
	}
	paneID, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	node, ok := b.model.ParentSplit(paneID)
	if !ok {
		return nil, fmt.Errorf("%w: pane %s has no parent split", ErrNotApplicable, paneID)
	}
	if err := b.model.SetSplitRatio(node, ratio); err != nil {
		return nil, err
	}
	return map[string]any{"node_id": node}, nil
}

// extractToTab targets any tab, like closePane; a sole pane cannot leave its
// tab, which reads as not applicable rather than failure.
func (b *builtins) extractToTab(params map[string]any) (map[string]any, error) {
	paneID, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	tabID, err := b.model.ExtractPaneToTab(paneID)
	if err != nil {
		if errors.Is(err, schema.ErrLastPane) {
			return nil, fmt.Errorf("%w: %s", ErrNotApplicable, err)
		}
		return nil, err
	}
	return map[string]any{"tab_id": tabID, "pane_id": paneID}, nil
}

func (b *builtins) changeWidgetType(params map[string]any) (map[string]any, error) {
	widget, ok := stringParam(params, "widget_id")
	if !ok {
		return nil, fmt.Errorf("widget_id is required")
	}
	paneID, err := b.paneTarget(params)
	if err != nil {
		return nil, err
	}
	if err := b.model.ChangePaneContent(paneID, schema.ProviderID(widget)); err != nil {
		return nil, err
	}
	return map[string]any{"pane_id": paneID, "widget_id": widget}, nil
}

// capabilityHandler builds a handler that resolves its target instance in
// preference order: explicit instance_id parameter, then the active pane of
// the active tab, then the first registered instance declaring the
// capability. When none qualify the optional fallback runs; without one the
// command reports not applicable.
func (b *builtins) capabilityHandler(cap schema.Capability, fallback HandlerFunc) HandlerFunc {
	return func(params map[string]any) (map[string]any, error) {
		if explicit, ok := stringParam(params, "instance_id"); ok {
			return b.execCapability(schema.InstanceID(explicit), cap, params)
		}
		if pane, ok := b.model.ActivePane(); ok {
			if id := schema.InstanceID(pane); b.caps.Has(id, cap) {
				return b.execCapability(id, cap, params)
			}
		}
		if candidates := b.caps.FindWithCapability(cap); len(candidates) > 0 {
			return b.execCapability(candidates[0], cap, params)
		}
		if fallback != nil {
			return fallback(params)
		}
		return nil, fmt.Errorf("%w: no instance supports %s", ErrNotApplicable, cap)
	}
}

func (b *builtins) execCapability(id schema.InstanceID, cap schema.Capability, params map[string]any) (map[string]any, error) {
	result, err := b.caps.Execute(id, cap, params)
	if err != nil {
		return nil, err
	}
	return map[string]any{"instance_id": id, "result": result}, nil
}

// paneTarget resolves the pane_id parameter, defaulting to the active pane.
func (b *builtins) paneTarget(params map[string]any) (schema.PaneID, error) {
	if id, ok := stringParam(params, "pane_id"); ok {
		return schema.PaneID(id), nil
	}
	if pane, ok := b.model.ActivePane(); ok {
		return pane, nil
	}
	return "", fmt.Errorf("no pane_id given and no active pane")
}

// tabTarget resolves the tab_id parameter, defaulting to the active tab.
func (b *builtins) tabTarget(params map[string]any) (schema.TabID, error) {
	if id, ok := stringParam(params, "tab_id"); ok {
		return schema.TabID(id), nil
	}
	if tab, ok := b.model.ActiveTab(); ok {
		return tab, nil
	}
	return "", fmt.Errorf("no tab_id given and no active tab")
}

func stringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func numberParam(params map[string]any, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
