package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"rememberit/internal/config"
	"rememberit/internal/deck"
	"rememberit/internal/logging"
	"rememberit/internal/services"
)

// Store keeps the last known-good deck mirror. The in-memory copy is always
// present; when the cache is enabled it is mirrored to SQLite so later runs
// can read decks without a network round trip. Access is single-threaded.
type Store struct {
	decks  deck.Collection
	db     *sql.DB
	path   string
	lock   *flock.Flock
	logger *slog.Logger
}

// Open builds a store from configuration. With the cache disabled the store
// is memory-only.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	store := &Store{logger: logger}
	if cfg == nil || !cfg.Cache.Enabled || cfg.Cache.Path == "" {
		return store, nil
	}

	dbPath := cfg.Cache.Path
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	lock := flock.New(dbPath + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire cache lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("cache %s is in use by another process", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store.db = db
	store.path = dbPath
	store.lock = lock
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	if err := store.loadMirror(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	logger.Debug("cache opened",
		logging.String(logging.FieldComponent, "cache"),
		logging.String("path", dbPath),
		logging.Int("decks", len(store.decks)))
	return store, nil
}

// Close releases the database handle and the lock file.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var firstErr error
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			firstErr = err
		}
		s.db = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
		s.lock = nil
	}
	return firstErr
}

// Persistent reports whether a SQLite mirror backs this store.
func (s *Store) Persistent() bool { return s.db != nil }

// Empty reports whether the store holds no decks yet.
func (s *Store) Empty() bool { return len(s.decks) == 0 }

// Decks returns the cached collection in sync order.
func (s *Store) Decks() deck.Collection {
	out := make(deck.Collection, len(s.decks))
	copy(out, s.decks)
	return out
}

// Get resolves a deck by name, path, or id string.
func (s *Store) Get(key string) (deck.Deck, error) {
	if d, ok := s.decks.Lookup(key); ok {
		return d, nil
	}
	return deck.Deck{}, services.Wrap(services.ErrNotFound, "cache", "get", fmt.Sprintf("deck %q not cached", key), nil)
}

// ReplaceAll swaps in a fresh mirror from a sync. Memory and SQLite move
// together; on write failure the previous mirror stays visible.
func (s *Store) ReplaceAll(ctx context.Context, decks deck.Collection) error {
	if s.db != nil {
		if err := s.rewriteMirror(ctx, decks); err != nil {
			return err
		}
	}
	s.decks = make(deck.Collection, len(decks))
	copy(s.decks, decks)
	return nil
}

// ApplyRename updates a deck's name and path after a confirmed remote rename.
// The rename target is a full path; the display name is its last segment.
func (s *Store) ApplyRename(ctx context.Context, deckID int64, newPath string) error {
	idx := -1
	for i, d := range s.decks {
		if d.ID == deckID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return services.Wrap(services.ErrNotFound, "cache", "rename", fmt.Sprintf("deck %d not cached", deckID), nil)
	}

	name := newPath
	if i := strings.LastIndex(newPath, deck.PathSeparator); i >= 0 {
		name = newPath[i+len(deck.PathSeparator):]
	}

	if s.db != nil {
		if _, err := s.db.ExecContext(ctx,
			"UPDATE decks SET name = ?, path = ? WHERE id = ?", name, newPath, deckID); err != nil {
			return fmt.Errorf("update cached deck name: %w", err)
		}
	}
	s.decks[idx].Name = name
	s.decks[idx].Path = newPath
	return nil
}

// Remove drops a deck from the mirror after a confirmed remote delete.
func (s *Store) Remove(ctx context.Context, deckID int64) error {
	idx := -1
	for i, d := range s.decks {
		if d.ID == deckID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return services.Wrap(services.ErrNotFound, "cache", "remove", fmt.Sprintf("deck %d not cached", deckID), nil)
	}

	if s.db != nil {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin cache tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if _, err := tx.ExecContext(ctx, "DELETE FROM cards WHERE deck_id = ?", deckID); err != nil {
			return fmt.Errorf("delete cached cards: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM decks WHERE id = ?", deckID); err != nil {
			return fmt.Errorf("delete cached deck: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit cache tx: %w", err)
		}
	}
	s.decks = append(s.decks[:idx:idx], s.decks[idx+1:]...)
	return nil
}
