package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"rememberit/internal/config"
	"rememberit/internal/deck"
	"rememberit/internal/services"
)

func persistentConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")
	return &cfg
}

func sampleDecks() deck.Collection {
	return deck.Collection{
		{
			ID: 1, Name: "Spanish", Path: "Spanish", TotalInDeck: 2,
			Cards: []deck.Card{
				{NoteID: 10, Front: "hola", Back: "hello"},
				{NoteID: 11, Front: "uno", Back: "one"},
			},
		},
		{ID: 2, Name: "Go", Path: "Go"},
	}
}

func TestMemoryOnlyStore(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false

	store, err := Open(&cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if store.Persistent() {
		t.Fatal("store should be memory-only")
	}
	if err := store.ReplaceAll(context.Background(), sampleDecks()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := len(store.Decks()); got != 2 {
		t.Fatalf("decks = %d, want 2", got)
	}
}

func TestGetResolvesNamePathAndID(t *testing.T) {
	store, err := Open(persistentConfig(t), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.ReplaceAll(context.Background(), sampleDecks()); err != nil {
		t.Fatalf("replace: %v", err)
	}

	for _, key := range []string{"Spanish", "1"} {
		d, err := store.Get(key)
		if err != nil {
			t.Fatalf("get %q: %v", key, err)
		}
		if d.ID != 1 {
			t.Fatalf("get %q resolved deck %d", key, d.ID)
		}
	}

	_, err = store.Get("Klingon")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMirrorSurvivesReopen(t *testing.T) {
	cfg := persistentConfig(t)

	store, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.ReplaceAll(context.Background(), sampleDecks()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	d, err := reopened.Get("Spanish")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if len(d.Cards) != 2 || d.Cards[0].Front != "hola" {
		t.Fatalf("cards not mirrored: %+v", d.Cards)
	}
}

func TestApplyRename(t *testing.T) {
	cfg := persistentConfig(t)
	store, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.ReplaceAll(context.Background(), sampleDecks()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.ApplyRename(context.Background(), 1, "Castellano"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if _, err := store.Get("Spanish"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("old name should miss, got %v", err)
	}
	if _, err := store.Get("Castellano"); err != nil {
		t.Fatalf("new name should resolve: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Rename must be durable.
	reopened, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if _, err := reopened.Get("Castellano"); err != nil {
		t.Fatalf("rename not persisted: %v", err)
	}
}

func TestApplyRenameToNestedPath(t *testing.T) {
	store, err := Open(persistentConfig(t), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.ReplaceAll(context.Background(), sampleDecks()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.ApplyRename(context.Background(), 2, "Languages::Go"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	d, err := store.Get("Languages::Go")
	if err != nil {
		t.Fatalf("new path should resolve: %v", err)
	}
	if d.Name != "Go" || d.Path != "Languages::Go" {
		t.Fatalf("name should be the last path segment: %+v", d)
	}
}

func TestRemoveDeck(t *testing.T) {
	store, err := Open(persistentConfig(t), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.ReplaceAll(context.Background(), sampleDecks()); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.Remove(context.Background(), 1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Get("Spanish"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("removed deck should miss, got %v", err)
	}
	if got := len(store.Decks()); got != 1 {
		t.Fatalf("decks = %d, want 1", got)
	}

	if err := store.Remove(context.Background(), 999); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("removing unknown deck should be not found, got %v", err)
	}
}

func TestLockRejectsSecondOpen(t *testing.T) {
	cfg := persistentConfig(t)
	store, err := Open(cfg, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := Open(cfg, nil); err == nil {
		t.Fatal("second open should fail while the lock is held")
	}
}
