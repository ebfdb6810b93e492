package rememberit

import (
	"context"
	"fmt"
	"strings"

	"rememberit/internal/deck"
	"rememberit/internal/format"
	"rememberit/internal/logging"
	"rememberit/internal/services"
)

// UpsertDeck applies a deck file against the remote service. Card identity
// is resolved in order: note id match, exact (front, back) match (skipped as
// already present), front-only match (updated in place), otherwise added.
// The target deck is created when it does not exist yet. On success the
// collection is resynced and the refreshed deck returned.
func (c *Client) UpsertDeck(ctx context.Context, file *deck.File) (deck.Deck, error) {
	if file == nil {
		return deck.Deck{}, services.Wrap(services.ErrValidation, "facade", "upsert-deck", "deck file required", nil)
	}
	if file.Cards == nil {
		return deck.Deck{}, services.Wrap(services.ErrValidation, "facade", "upsert-deck", "cards must be a list", nil)
	}
	entries, err := c.renderEntries(file.Dedupe())
	if err != nil {
		return deck.Deck{}, err
	}

	target, err := c.resolveOrCreate(ctx, file)
	if err != nil {
		return deck.Deck{}, err
	}

	existing, err := c.remote.SearchCards(ctx, target.SearchQuery())
	if err != nil {
		return deck.Deck{}, err
	}
	byID := make(map[int64]deck.Card, len(existing))
	byFrontBack := make(map[[2]string]deck.Card, len(existing))
	byFront := make(map[string]deck.Card, len(existing))
	for _, card := range existing {
		front := format.ParseField(card.Front).Content
		back := format.ParseField(card.Back).Content
		if card.NoteID != 0 {
			byID[card.NoteID] = card
		}
		byFrontBack[[2]string{front, back}] = card
		if _, taken := byFront[front]; !taken {
			byFront[front] = card
		}
	}

	var added, updated, skipped int
	for _, entry := range entries {
		switch {
		case entry.source.NoteID != 0:
			card, known := byID[entry.source.NoteID]
			if !known {
				return deck.Deck{}, services.Wrap(services.ErrValidation, "facade", "upsert-deck",
					fmt.Sprintf("note %d not found in deck %q", entry.source.NoteID, target.Path), nil)
			}
			if format.ParseField(card.Front).Content == entry.source.Front &&
				format.ParseField(card.Back).Content == entry.source.Back {
				skipped++
				continue
			}
			if err := c.remote.UpdateNote(ctx, entry.source.NoteID, target.ID, entry.front, entry.back, entry.source.Tags); err != nil {
				return deck.Deck{}, err
			}
			updated++
		default:
			if _, present := byFrontBack[[2]string{entry.source.Front, entry.source.Back}]; present {
				skipped++
				continue
			}
			if card, sameFront := byFront[entry.source.Front]; sameFront && card.NoteID != 0 {
				if err := c.remote.UpdateNote(ctx, card.NoteID, target.ID, entry.front, entry.back, entry.source.Tags); err != nil {
					return deck.Deck{}, err
				}
				updated++
				continue
			}
			if err := c.remote.AddNote(ctx, target.ID, entry.front, entry.back, entry.source.Tags); err != nil {
				return deck.Deck{}, err
			}
			added++
		}
	}

	c.logger.Info("deck upserted",
		logging.String(logging.FieldComponent, "facade"),
		logging.String(logging.FieldDeck, target.Path),
		logging.Int("added", added),
		logging.Int("updated", updated),
		logging.Int("skipped", skipped))

	decks, err := c.Sync(ctx)
	if err != nil {
		return deck.Deck{}, err
	}
	refreshed, ok := decks.ByID(target.ID)
	if !ok {
		// Deck vanished between the upsert and the resync.
		return deck.Deck{}, services.Wrap(services.ErrNotFound, "facade", "upsert-deck",
			fmt.Sprintf("deck %q missing after upsert", target.Path), nil)
	}
	return refreshed, nil
}

// LoadDeckFile reads a deck file from disk and upserts it.
func (c *Client) LoadDeckFile(ctx context.Context, path string) (deck.Deck, error) {
	file, err := deck.ReadFile(path)
	if err != nil {
		return deck.Deck{}, services.Wrap(services.ErrValidation, "facade", "load-deck", "parse deck file", err)
	}
	return c.UpsertDeck(ctx, file)
}

// ExportDeck writes a deck as an editable JSON file. Formatted fields are
// parsed back to their original plain content so the file round-trips
// through UpsertDeck.
func (c *Client) ExportDeck(ctx context.Context, ref, path string) error {
	target, err := c.Deck(ctx, ref)
	if err != nil {
		return err
	}
	return ExportUpsert(target).WriteTo(path)
}

// ExportUpsert converts a synced deck into the upsert file schema with
// parsed plain-text fields.
func ExportUpsert(d deck.Deck) deck.File {
	file := deck.File{Name: d.Name, DeckID: d.ID, Cards: make([]deck.CardEntry, 0, len(d.Cards))}
	for _, card := range d.Cards {
		front := format.ParseField(card.Front)
		back := format.ParseField(card.Back)
		entry := deck.CardEntry{
			NoteID: card.NoteID,
			Front:  front.Content,
			Back:   back.Content,
			Tags:   card.Tags,
		}
		if front.Type != format.TypePlain && front.Type != "" {
			entry.FrontType = front.Type
		}
		entry.FrontTheme = front.Theme
		if back.Type == format.TypeCode {
			entry.BackType = back.Type
			entry.Lang = back.Lang
		}
		file.Cards = append(file.Cards, entry)
	}
	return file
}

// renderedEntry pairs a card entry with its formatted HTML fields.
type renderedEntry struct {
	source deck.CardEntry
	front  string
	back   string
}

// renderEntries validates and formats every card before any network call.
func (c *Client) renderEntries(entries []deck.CardEntry) ([]renderedEntry, error) {
	rendered := make([]renderedEntry, 0, len(entries))
	for i, entry := range entries {
		if strings.TrimSpace(entry.Front) == "" {
			return nil, services.Wrap(services.ErrValidation, "facade", "upsert-deck",
				fmt.Sprintf("card %d has an empty front", i), nil)
		}
		front, err := c.formatter.FormatField(entry.Front, entry.FrontType, entry.Lang, entry.FrontTheme)
		if err != nil {
			return nil, err
		}
		back, err := c.formatter.FormatField(entry.Back, entry.BackType, entry.Lang, "")
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, renderedEntry{source: entry, front: front, back: back})
	}
	return rendered, nil
}

// resolveOrCreate finds the target deck by id or name, creating it when a
// name is given but nothing matches.
func (c *Client) resolveOrCreate(ctx context.Context, file *deck.File) (deck.Deck, error) {
	decks, err := c.Decks(ctx)
	if err != nil {
		return deck.Deck{}, err
	}
	if file.DeckID != 0 {
		if found, ok := decks.ByID(file.DeckID); ok {
			return found, nil
		}
	}
	name := strings.TrimSpace(file.Name)
	if name == "" {
		return deck.Deck{}, services.Wrap(services.ErrValidation, "facade", "upsert-deck",
			"deck file needs a name or a known deck_id", nil)
	}
	if found, ok := decks.Lookup(name); ok {
		return found, nil
	}
	return c.CreateDeck(ctx, name)
}
