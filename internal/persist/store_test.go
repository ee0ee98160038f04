package persist

import (
	"os"
	"path/filepath"
	"testing"

	"pkt.systems/panemux/schema"
)

func sampleSnapshot() schema.WorkspaceSnapshot {
	return schema.WorkspaceSnapshot{
		Tabs: []schema.TabSnapshot{
			{
				ID:           "tab-1",
				Name:         "shell",
				ActivePaneID: "pane-1",
				Tree: &schema.NodeSnapshot{
					Type: schema.NodeTypeLeaf,
					Pane: &schema.PaneSnapshot{ID: "pane-1", ProviderID: "terminal"},
				},
			},
		},
		ActiveTabIndex: 0,
		Metadata:       map[string]string{"session": "morning"},
	}
}

func TestNewStoreRequiresDirectory(t *testing.T) {
	if _, err := NewStore(""); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("new store: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("state directory missing: %v", err)
	}
}

func TestLoadMissIsNotAnError(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, found, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected a miss on empty directory")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	snap := sampleSnapshot()
	if err := store.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("expected snapshot to exist")
	}
	if len(loaded.Tabs) != 1 || loaded.Tabs[0].ID != "tab-1" {
		t.Fatalf("unexpected tabs: %+v", loaded.Tabs)
	}
	if loaded.Tabs[0].Tree == nil || loaded.Tabs[0].Tree.Pane.ProviderID != "terminal" {
		t.Fatalf("tree not preserved: %+v", loaded.Tabs[0].Tree)
	}
	if loaded.Metadata["session"] != "morning" {
		t.Fatalf("metadata not preserved: %+v", loaded.Metadata)
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save(sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	snap := sampleSnapshot()
	snap.Tabs[0].Name = "renamed"
	if err := store.Save(snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, _, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Tabs[0].Name != "renamed" {
		t.Fatalf("expected second save to win, got %q", loaded.Tabs[0].Name)
	}
	// No temp files may linger after a successful save.
	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the snapshot file, got %d entries", len(entries))
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := store.Load(); err == nil {
		t.Fatalf("expected error for corrupt snapshot")
	}
}
