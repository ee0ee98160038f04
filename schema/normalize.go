package schema

import (
	"fmt"
	"strings"
)

// ClampRatio forces a ratio into the open interval (MinSplitRatio,
// MaxSplitRatio) so neither child of a split can degenerate to zero size.
// Non-finite or non-positive input falls back to DefaultSplitRatio.
func ClampRatio(ratio float64) float64 {
	if ratio != ratio || ratio <= 0 {
		return DefaultSplitRatio
	}
	if ratio < MinSplitRatio {
		return MinSplitRatio
	}
	if ratio > MaxSplitRatio {
		return MaxSplitRatio
	}
	return ratio
}

// NormalizeTabName trims a tab name and substitutes a default when empty.
func NormalizeTabName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "untitled"
	}
	return name
}

// ValidateSnapshot checks a workspace snapshot for structural defects before
// restore: at least one tab, in-range active indices, well-formed trees,
// unique ids, and active panes that resolve to leaves of their own tree.
// Ratios outside [0, 1] are rejected; in-range ratios outside the clamp
// limits are accepted and clamped on restore.
func ValidateSnapshot(snap WorkspaceSnapshot) error {
	if len(snap.Tabs) == 0 {
		return fmt.Errorf("%w: no tabs", ErrInvalidSnapshot)
	}
	if snap.ActiveTabIndex < 0 || snap.ActiveTabIndex >= len(snap.Tabs) {
		return fmt.Errorf("%w: active_tab_index %d out of range", ErrInvalidSnapshot, snap.ActiveTabIndex)
	}
	tabIDs := make(map[TabID]struct{}, len(snap.Tabs))
	paneIDs := make(map[PaneID]struct{})
	for i, tab := range snap.Tabs {
		if tab.ID == "" {
			return fmt.Errorf("%w: tab %d has empty id", ErrInvalidSnapshot, i)
		}
		if _, dup := tabIDs[tab.ID]; dup {
			return fmt.Errorf("%w: duplicate tab id %s", ErrInvalidSnapshot, tab.ID)
		}
		tabIDs[tab.ID] = struct{}{}
		if tab.Tree == nil {
			return fmt.Errorf("%w: tab %s has no tree", ErrInvalidSnapshot, tab.ID)
		}
		leaves, err := validateNode(tab.ID, tab.Tree, paneIDs)
		if err != nil {
			return err
		}
		if _, ok := leaves[tab.ActivePaneID]; !ok {
			return fmt.Errorf("%w: tab %s active pane %s is not a leaf of its tree", ErrInvalidSnapshot, tab.ID, tab.ActivePaneID)
		}
	}
	return nil
}

func validateNode(tabID TabID, node *NodeSnapshot, paneIDs map[PaneID]struct{}) (map[PaneID]struct{}, error) {
	leaves := make(map[PaneID]struct{})
	var walk func(n *NodeSnapshot) error
	walk = func(n *NodeSnapshot) error {
		switch n.Type {
		case NodeTypeLeaf:
			if n.Pane == nil {
				return fmt.Errorf("%w: tab %s leaf without pane", ErrInvalidSnapshot, tabID)
			}
			if n.Pane.ID == "" {
				return fmt.Errorf("%w: tab %s pane with empty id", ErrInvalidSnapshot, tabID)
			}
			if _, dup := paneIDs[n.Pane.ID]; dup {
				return fmt.Errorf("%w: duplicate pane id %s", ErrInvalidSnapshot, n.Pane.ID)
			}
			paneIDs[n.Pane.ID] = struct{}{}
			leaves[n.Pane.ID] = struct{}{}
			return nil
		case NodeTypeSplit:
			if !n.Orientation.Valid() {
				return fmt.Errorf("%w: tab %s split with orientation %q", ErrInvalidSnapshot, tabID, n.Orientation)
			}
			if n.Ratio < 0 || n.Ratio > 1 {
				return fmt.Errorf("%w: tab %s split ratio %v out of range", ErrInvalidSnapshot, tabID, n.Ratio)
			}
			if n.First == nil || n.Second == nil {
				return fmt.Errorf("%w: tab %s split missing a child", ErrInvalidSnapshot, tabID)
			}
			if err := walk(n.First); err != nil {
				return err
			}
			return walk(n.Second)
		default:
			return fmt.Errorf("%w: tab %s unknown node type %q", ErrInvalidSnapshot, tabID, n.Type)
		}
	}
	if err := walk(node); err != nil {
		return nil, err
	}
	return leaves, nil
}
