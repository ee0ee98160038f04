package schema

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestClampRatio(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 0.5},
		{0.3, 0.3},
		{MinSplitRatio, MinSplitRatio},
		{MaxSplitRatio, MaxSplitRatio},
		{0.01, MinSplitRatio},
		{0.99, MaxSplitRatio},
		{1.5, MaxSplitRatio},
		{0, DefaultSplitRatio},
		{-0.2, DefaultSplitRatio},
		{math.NaN(), DefaultSplitRatio},
	}
	for _, tc := range cases {
		if got := ClampRatio(tc.in); got != tc.want {
			t.Fatalf("ClampRatio(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTabName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"shell", "shell"},
		{"  shell  ", "shell"},
		{"", "untitled"},
		{"   ", "untitled"},
	}
	for _, tc := range cases {
		if got := NormalizeTabName(tc.in); got != tc.want {
			t.Fatalf("NormalizeTabName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func leaf(id PaneID) *NodeSnapshot {
	return &NodeSnapshot{
		Type: NodeTypeLeaf,
		Pane: &PaneSnapshot{ID: id, ProviderID: "terminal"},
	}
}

func validSnapshot() WorkspaceSnapshot {
	return WorkspaceSnapshot{
		Tabs: []TabSnapshot{
			{
				ID:           "tab-1",
				Name:         "shell",
				ActivePaneID: "pane-1",
				Tree: &NodeSnapshot{
					Type:        NodeTypeSplit,
					Orientation: OrientationHorizontal,
					Ratio:       0.5,
					First:       leaf("pane-1"),
					Second:      leaf("pane-2"),
				},
			},
			{
				ID:           "tab-2",
				Name:         "notes",
				ActivePaneID: "pane-3",
				Tree:         leaf("pane-3"),
			},
		},
		ActiveTabIndex: 1,
	}
}

func TestValidateSnapshotAcceptsWellFormed(t *testing.T) {
	if err := ValidateSnapshot(validSnapshot()); err != nil {
		t.Fatalf("expected valid snapshot, got %v", err)
	}
	// Ratio inside [0, 1] but outside the clamp limits still validates.
	snap := validSnapshot()
	snap.Tabs[0].Tree.Ratio = 0.01
	if err := ValidateSnapshot(snap); err != nil {
		t.Fatalf("off-limit ratio must validate, got %v", err)
	}
}

func TestValidateSnapshotRejections(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*WorkspaceSnapshot)
		wantSub string
	}{
		{"no tabs", func(s *WorkspaceSnapshot) { s.Tabs = nil }, "no tabs"},
		{"index below range", func(s *WorkspaceSnapshot) { s.ActiveTabIndex = -1 }, "out of range"},
		{"index above range", func(s *WorkspaceSnapshot) { s.ActiveTabIndex = 2 }, "out of range"},
		{"empty tab id", func(s *WorkspaceSnapshot) { s.Tabs[0].ID = "" }, "empty id"},
		{"duplicate tab id", func(s *WorkspaceSnapshot) { s.Tabs[1].ID = "tab-1" }, "duplicate tab id"},
		{"missing tree", func(s *WorkspaceSnapshot) { s.Tabs[0].Tree = nil }, "no tree"},
		{"leaf without pane", func(s *WorkspaceSnapshot) { s.Tabs[1].Tree.Pane = nil }, "leaf without pane"},
		{"empty pane id", func(s *WorkspaceSnapshot) { s.Tabs[1].Tree.Pane.ID = "" }, "pane with empty id"},
		{"duplicate pane id", func(s *WorkspaceSnapshot) { s.Tabs[1].Tree.Pane.ID = "pane-1" }, "duplicate pane id"},
		{"bad orientation", func(s *WorkspaceSnapshot) { s.Tabs[0].Tree.Orientation = "diagonal" }, "orientation"},
		{"ratio below zero", func(s *WorkspaceSnapshot) { s.Tabs[0].Tree.Ratio = -0.1 }, "ratio"},
		{"ratio above one", func(s *WorkspaceSnapshot) { s.Tabs[0].Tree.Ratio = 1.1 }, "ratio"},
		{"split missing child", func(s *WorkspaceSnapshot) { s.Tabs[0].Tree.Second = nil }, "missing a child"},
		{"unknown node type", func(s *WorkspaceSnapshot) { s.Tabs[0].Tree.Type = "grid" }, "unknown node type"},
		{"active pane not in tree", func(s *WorkspaceSnapshot) { s.Tabs[0].ActivePaneID = "pane-3" }, "not a leaf of its tree"},
		{"active pane unknown", func(s *WorkspaceSnapshot) { s.Tabs[0].ActivePaneID = "pane-9" }, "not a leaf of its tree"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap := validSnapshot()
			tc.mutate(&snap)
			err := ValidateSnapshot(snap)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("expected error containing %q, got %v", tc.wantSub, err)
			}
		})
	}
}

func TestCategorySentinels(t *testing.T) {
	if !errors.Is(ErrInvalidSnapshot, ErrValidation) {
		t.Fatalf("ErrInvalidSnapshot must be a validation error")
	}
	if !errors.Is(ErrTabNotFound, ErrValidation) {
		t.Fatalf("ErrTabNotFound must be a validation error")
	}
	if !errors.Is(ErrMutationInProgress, ErrInvariant) {
		t.Fatalf("ErrMutationInProgress must be an invariant error")
	}
}
