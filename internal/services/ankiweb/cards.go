package ankiweb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rememberit/internal/deck"
	"rememberit/internal/services"
	"rememberit/internal/wire"
)

// SearchCards runs a card search. Deck queries use the form
// deck:<name-or-path>.
func (c *Client) SearchCards(ctx context.Context, query string) ([]deck.Card, error) {
	if strings.TrimSpace(query) == "" {
		return nil, services.Wrap(services.ErrValidation, "ankiweb", "search", "query required", nil)
	}
	if err := c.requireAuth("search"); err != nil {
		return nil, err
	}

	payload, err := wire.EncodeSearchRequest(query)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ankiweb", "search", "encode request", err)
	}

	body, _, err := c.post(ctx, "search", c.baseURL, "/svc/search/search", "/search", payload, nil)
	if err != nil {
		return nil, err
	}

	rows, err := wire.DecodeSearchResponse(body)
	if err != nil {
		return nil, services.Wrap(services.ErrRemote, "ankiweb", "search", "decode response", err)
	}

	cards := make([]deck.Card, 0, len(rows))
	for _, row := range rows {
		front, back := deck.SplitFrontBack(row.Text)
		card := deck.Card{
			NoteID:  row.NoteID,
			Front:   front,
			Back:    back,
			RawText: row.Text,
		}
		if row.NoteID != 0 {
			card.EditURL = fmt.Sprintf("%s/edit/%d", c.baseURL, row.NoteID)
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// AddNote creates a new note in the given deck.
func (c *Client) AddNote(ctx context.Context, deckID int64, front, back, tags string) error {
	return c.addOrUpdate(ctx, wire.UpsertNote{
		Front:   front,
		Back:    back,
		Tags:    tags,
		ModelID: c.modelID,
		DeckID:  deckID,
	}, "/add")
}

// UpdateNote rewrites an existing note in place.
func (c *Client) UpdateNote(ctx context.Context, noteID, deckID int64, front, back, tags string) error {
	if noteID == 0 {
		return services.Wrap(services.ErrValidation, "ankiweb", "update-note", "note id required", nil)
	}
	return c.addOrUpdate(ctx, wire.UpsertNote{
		Front:   front,
		Back:    back,
		Tags:    tags,
		ModelID: c.modelID,
		DeckID:  deckID,
		NoteID:  noteID,
	}, fmt.Sprintf("/edit/%d", noteID))
}

// addOrUpdate posts to the editor host, falling back to the base host when
// the editor host answers 404.
func (c *Client) addOrUpdate(ctx context.Context, note wire.UpsertNote, referer string) error {
	operation := "add-note"
	if note.NoteID != 0 {
		operation = "update-note"
	}
	if strings.TrimSpace(note.Front) == "" {
		return services.Wrap(services.ErrValidation, "ankiweb", operation, "card front required", nil)
	}
	if err := c.requireAuth(operation); err != nil {
		return err
	}

	payload, err := wire.EncodeAddOrUpdateRequest(note)
	if err != nil {
		return services.Wrap(services.ErrValidation, "ankiweb", operation, "encode request", err)
	}

	_, status, err := c.post(ctx, operation, c.editorURL, "/svc/editor/add-or-update", referer, payload, nil)
	if err != nil && status == http.StatusNotFound && errors.Is(err, services.ErrRemote) && c.editorURL != c.baseURL {
		_, _, err = c.post(ctx, operation, c.baseURL, "/svc/editor/add-or-update", referer, payload, nil)
	}
	return err
}
