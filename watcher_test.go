package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsStoreChanges(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	w, err := NewWatcher(store)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	msgs := make(chan any, 1)
	go func() { msgs <- w.WatchCmd()() }()

	// Unrelated files in the directory are ignored
	if err := os.WriteFile(filepath.Join(store.Dir(), "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.WriteFile(store.Path(), []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to write store: %v", err)
	}

	select {
	case msg := <-msgs:
		change, ok := msg.(FileChangeMsg)
		if !ok {
			t.Fatalf("got %T, want FileChangeMsg", msg)
		}
		if filepath.Clean(change.Path) != filepath.Clean(store.Path()) {
			t.Errorf("Path = %q, want %q", change.Path, store.Path())
		}
		if change.Deleted {
			t.Error("write reported as delete")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing"))

	if _, err := NewWatcher(store); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
