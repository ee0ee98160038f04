package core

import (
	"testing"

	"pkt.systems/panemux/schema"
)

func TestNavigateSingleLeaf(t *testing.T) {
	m, _ := newTestModel(t)
	tabID, _ := m.CreateTab("work", "")
	p1 := rootPane(t, m, tabID)
	if _, found := m.Navigate(p1, schema.DirectionRight); found {
		t.Fatalf("single leaf has no neighbors")
	}
}

func TestNavigateInvalidInput(t *testing.T) {
	m, _ := newTestModel(t)
	tabID, _ := m.CreateTab("work", "")
	p1 := rootPane(t, m, tabID)
	if _, found := m.Navigate(p1, "sideways"); found {
		t.Fatalf("invalid direction should not resolve")
	}
	if _, found := m.Navigate("missing", schema.DirectionLeft); found {
		t.Fatalf("unknown pane should not resolve")
	}
}

func TestNavigatePicksGreatestOverlap(t *testing.T) {
	m, _ := newTestModel(t)
	tabID, _ := m.CreateTab("work", "")
	p1 := rootPane(t, m, tabID)
	// p1 fills the left half; the right half is split 30/70 into p2 (top)
	// and p3 (bottom).
	p2, err := m.SplitPane(p1, schema.OrientationHorizontal, 0.5, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	p3, err := m.SplitPane(p2, schema.OrientationVertical, 0.3, "")
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	got, found := m.Navigate(p1, schema.DirectionRight)
	if !found {
		t.Fatalf("expected a right neighbor")
	}
	if got != p3 {
		t.Fatalf("expected %s (70%% overlap) over %s (30%%), got %s", p3, p2, got)
	}
	if got, _ := m.Navigate(p3, schema.DirectionLeft); got != p1 {
		t.Fatalf("expected %s back to the left, got %s", p1, got)
	}
	if got, _ := m.Navigate(p2, schema.DirectionDown); got != p3 {
		t.Fatalf("expected %s below, got %s", p3, got)
	}
	if got, _ := m.Navigate(p3, schema.DirectionUp); got != p2 {
		t.Fatalf("expected %s above, got %s", p2, got)
	}
}

func TestNavigateExactTieUsesPreOrder(t *testing.T) {
	m, _ := newTestModel(t)
	tabID, _ := m.CreateTab("work", "")
	p1 := rootPane(t, m, tabID)
	// Right half split evenly: p2 and p3 have identical overlap with p1 and
	// identical center distance. Pre-order position breaks the tie.
	p2, _ := m.SplitPane(p1, schema.OrientationHorizontal, 0.5, "")
	_, _ = m.SplitPane(p2, schema.OrientationVertical, 0.5, "")
	got, found := m.Navigate(p1, schema.DirectionRight)
	if !found {
		t.Fatalf("expected a right neighbor")
	}
	if got != p2 {
		t.Fatalf("tie should fall to the first pre-order leaf %s, got %s", p2, got)
	}
}

func TestNavigateNeverReturnsSource(t *testing.T) {
	m, _ := newTestModel(t)
	tabID, _ := m.CreateTab("work", "")
	p1 := rootPane(t, m, tabID)
	p2, _ := m.SplitPane(p1, schema.OrientationHorizontal, 0.5, "")
	for _, dir := range []schema.Direction{schema.DirectionUp, schema.DirectionDown, schema.DirectionLeft, schema.DirectionRight} {
		if got, found := m.Navigate(p1, dir); found && got == p1 {
			t.Fatalf("navigate %s returned the source pane", dir)
		}
		if got, found := m.Navigate(p2, dir); found && got == p2 {
			t.Fatalf("navigate %s returned the source pane", dir)
		}
	}
}

func TestNavigateNoNeighborInDirection(t *testing.T) {
	m, _ := newTestModel(t)
	tabID, _ := m.CreateTab("work", "")
	p1 := rootPane(t, m, tabID)
	if _, err := m.SplitPane(p1, schema.OrientationHorizontal, 0.5, ""); err != nil {
		t.Fatalf("split: %v", err)
	}
	if _, found := m.Navigate(p1, schema.DirectionLeft); found {
		t.Fatalf("leftmost pane has no left neighbor")
	}
	if _, found := m.Navigate(p1, schema.DirectionUp); found {
		t.Fatalf("no vertical neighbor exists")
	}
}
