package cache

import (
	"context"
	"embed"
	"fmt"
	"sort"
	"strings"

	"rememberit/internal/deck"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func (s *Store) applyMigrations(ctx context.Context) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}
	for _, name := range names {
		version := strings.TrimSuffix(name, ".sql")
		var count int
		if err := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", version).Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		stmt, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("record migration %s: %w", version, err)
		}
	}
	return tx.Commit()
}

// rewriteMirror replaces the SQLite mirror contents in one transaction.
func (s *Store) rewriteMirror(ctx context.Context, decks deck.Collection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cards"); err != nil {
		return fmt.Errorf("clear cached cards: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM decks"); err != nil {
		return fmt.Errorf("clear cached decks: %w", err)
	}

	for pos, d := range decks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO decks (id, name, path, level, new_count, learn_count, review_count, total_in_deck, total_incl_children, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.Path, d.Level, d.NewCount, d.LearnCount, d.ReviewCount,
			d.TotalInDeck, d.TotalIncludingChildren, pos); err != nil {
			return fmt.Errorf("insert cached deck %q: %w", d.Path, err)
		}
		for cardPos, c := range d.Cards {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cards (deck_id, note_id, front, back, tags, raw_text, edit_url, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				d.ID, c.NoteID, c.Front, c.Back, c.Tags, c.RawText, c.EditURL, cardPos); err != nil {
				return fmt.Errorf("insert cached card: %w", err)
			}
		}
	}
	return tx.Commit()
}

// loadMirror hydrates the in-memory collection from SQLite at open time.
func (s *Store) loadMirror(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, path, level, new_count, learn_count, review_count, total_in_deck, total_incl_children
		 FROM decks ORDER BY position`)
	if err != nil {
		return fmt.Errorf("load cached decks: %w", err)
	}
	defer rows.Close()

	var decks deck.Collection
	for rows.Next() {
		var d deck.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.Path, &d.Level, &d.NewCount, &d.LearnCount,
			&d.ReviewCount, &d.TotalInDeck, &d.TotalIncludingChildren); err != nil {
			return fmt.Errorf("scan cached deck: %w", err)
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate cached decks: %w", err)
	}

	for i := range decks {
		cards, err := s.loadCards(ctx, decks[i].ID)
		if err != nil {
			return err
		}
		decks[i].Cards = cards
	}
	s.decks = decks
	return nil
}

func (s *Store) loadCards(ctx context.Context, deckID int64) ([]deck.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT note_id, front, back, tags, raw_text, edit_url FROM cards WHERE deck_id = ? ORDER BY position", deckID)
	if err != nil {
		return nil, fmt.Errorf("load cached cards: %w", err)
	}
	defer rows.Close()

	var cards []deck.Card
	for rows.Next() {
		var c deck.Card
		if err := rows.Scan(&c.NoteID, &c.Front, &c.Back, &c.Tags, &c.RawText, &c.EditURL); err != nil {
			return nil, fmt.Errorf("scan cached card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
