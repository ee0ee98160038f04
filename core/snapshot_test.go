package core

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"pkt.systems/panemux/schema"
)

func buildWorkspace(t *testing.T) (*Model, *fakeFactory) {
	t.Helper()
	m, factory := newTestModel(t)
	first, err := m.CreateTab("shell", "terminal")
	if err != nil {
		t.Fatalf("create tab: %v", err)
	}
	p1 := rootPane(t, m, first)
	p2, err := m.SplitPane(p1, schema.OrientationHorizontal, 0.3, "editor")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if _, err := m.SplitPane(p2, schema.OrientationVertical, 0.6, ""); err != nil {
		t.Fatalf("split: %v", err)
	}
	if _, err := m.CreateTab("notes", "editor"); err != nil {
		t.Fatalf("create tab: %v", err)
	}
	m.SetMetadata("session", "morning")
	if err := m.SetWidgetPreference("sidebar", "editor"); err != nil {
		t.Fatalf("preference: %v", err)
	}
	return m, factory
}

func TestSerializeRestoreRoundTrip(t *testing.T) {
	m, _ := buildWorkspace(t)
	snap := m.Serialize()

	restored, err := NewModel(ModelConfig{
		Providers:       []schema.ProviderID{"terminal", "editor"},
		DefaultProvider: "terminal",
	}, ModelDeps{Factory: newFakeFactory()})
	if err != nil {
		t.Fatalf("new model: %v", err)
	}
	var events []schema.EventType
	restored.AddObserver(func(event schema.EventType, payload map[string]any) {
		events = append(events, event)
	})
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if len(events) != 1 || events[0] != schema.EventStateRestored {
		t.Fatalf("expected exactly one state_restored, got %v", events)
	}

	again := restored.Serialize()
	if len(again.Tabs) != len(snap.Tabs) {
		t.Fatalf("tab count changed: %d vs %d", len(again.Tabs), len(snap.Tabs))
	}
	for i := range snap.Tabs {
		if snap.Tabs[i].ID != again.Tabs[i].ID || snap.Tabs[i].ActivePaneID != again.Tabs[i].ActivePaneID {
			t.Fatalf("tab %d identity changed", i)
		}
		assertTreesEqual(t, snap.Tabs[i].Tree, again.Tabs[i].Tree)
	}
	if again.ActiveTabIndex != snap.ActiveTabIndex {
		t.Fatalf("active tab index changed")
	}
	if !reflect.DeepEqual(snap.Metadata, again.Metadata) || !reflect.DeepEqual(snap.WidgetPreferences, again.WidgetPreferences) {
		t.Fatalf("metadata or preferences changed")
	}
}

func assertTreesEqual(t *testing.T, want, got *schema.NodeSnapshot) {
	t.Helper()
	if want.Type != got.Type {
		t.Fatalf("node type %s vs %s", want.Type, got.Type)
	}
	if want.Type == schema.NodeTypeLeaf {
		if want.Pane.ID != got.Pane.ID || want.Pane.ProviderID != got.Pane.ProviderID {
			t.Fatalf("leaf mismatch: %+v vs %+v", want.Pane, got.Pane)
		}
		return
	}
	if want.Orientation != got.Orientation {
		t.Fatalf("orientation %s vs %s", want.Orientation, got.Orientation)
	}
	if math.Abs(want.Ratio-got.Ratio) > schema.RatioTolerance {
		t.Fatalf("ratio %v vs %v", want.Ratio, got.Ratio)
	}
	assertTreesEqual(t, want.First, got.First)
	assertTreesEqual(t, want.Second, got.Second)
}

func TestRestoreReplacesExistingState(t *testing.T) {
	m, factory := buildWorkspace(t)
	snap := m.Serialize()
	liveBefore := len(factory.live)

	if err := m.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	// Old instances torn down, same pane ids recreated.
	if len(factory.live) != liveBefore {
		t.Fatalf("expected %d live instances, got %d", liveBefore, len(factory.live))
	}
	if len(factory.destroyed) != liveBefore {
		t.Fatalf("expected old instances destroyed, got %d", len(factory.destroyed))
	}
}

func TestRestoreRejectsInvalidSnapshot(t *testing.T) {
	m, factory := buildWorkspace(t)
	before := m.Serialize()
	createdBefore := len(factory.created)

	bad := m.Serialize()
	bad.ActiveTabIndex = 99
	if err := m.Restore(bad); !errors.Is(err, schema.ErrInvalidSnapshot) {
		t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
	}
	if !reflect.DeepEqual(before, m.Serialize()) {
		t.Fatalf("failed restore must leave state untouched")
	}
	if len(factory.created) != createdBefore {
		t.Fatalf("failed restore must not leak instances")
	}
}

func TestRestoreRejectsUnknownProvider(t *testing.T) {
	m, factory := buildWorkspace(t)
	before := m.Serialize()
	createdBefore := len(factory.created)
	destroyedBefore := len(factory.destroyed)

	bad := m.Serialize()
	bad.Tabs[0].Tree.First.Pane.ProviderID = "browser"
	if err := m.Restore(bad); !errors.Is(err, schema.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	if !reflect.DeepEqual(before, m.Serialize()) {
		t.Fatalf("failed restore must leave state untouched")
	}
	if len(factory.created) != createdBefore || len(factory.destroyed) != destroyedBefore {
		t.Fatalf("failed restore must not touch provider instances")
	}
}

func TestRestoreRollsBackOnFactoryFailure(t *testing.T) {
	m, factory := buildWorkspace(t)
	before := m.Serialize()
	snap := m.Serialize()

	factory.failCreate = errors.New("backend down")
	if err := m.Restore(snap); err == nil {
		t.Fatalf("expected restore failure")
	}
	factory.failCreate = nil
	if !reflect.DeepEqual(before, m.Serialize()) {
		t.Fatalf("failed restore must leave state untouched")
	}
}

func TestRestoreClampsOffLimitRatios(t *testing.T) {
	m, _ := buildWorkspace(t)
	snap := m.Serialize()
	snap.Tabs[0].Tree.Ratio = 0.01 // in [0,1], outside clamp limits

	if err := m.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := m.Serialize().Tabs[0].Tree.Ratio; got != schema.MinSplitRatio {
		t.Fatalf("expected clamped ratio %v, got %v", schema.MinSplitRatio, got)
	}
}

func TestRestoreDoesNotResurrectMaximize(t *testing.T) {
	m, _ := buildWorkspace(t)
	first := m.Serialize().Tabs[0].ID
	panes, _ := m.Panes(first)
	if err := m.ActivateTab(first); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := m.MaximizePane(panes[0]); err != nil {
		t.Fatalf("maximize: %v", err)
	}
	snap := m.Serialize()
	if err := m.Restore(snap); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if _, ok := m.MaximizedPane(); ok {
		t.Fatalf("maximize marker must not survive restore")
	}
}
