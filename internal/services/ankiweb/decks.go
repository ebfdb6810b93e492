package ankiweb

import (
	"context"
	"strings"
	"time"

	"rememberit/internal/services"
	"rememberit/internal/wire"
)

// DeckListInfo fetches the remote deck tree with per-deck study counters.
func (c *Client) DeckListInfo(ctx context.Context) (*wire.DeckListInfo, error) {
	if err := c.requireAuth("deck-list-info"); err != nil {
		return nil, err
	}

	payload, err := wire.EncodeDeckListInfoRequest(minutesWestOfUTC(c.now()))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "ankiweb", "deck-list-info", "encode request", err)
	}

	body, _, err := c.post(ctx, "deck-list-info", c.baseURL, "/svc/decks/deck-list-info", "/decks", payload, nil)
	if err != nil {
		return nil, err
	}

	info, err := wire.DecodeDeckListInfoResponse(body)
	if err != nil {
		return nil, services.Wrap(services.ErrRemote, "ankiweb", "deck-list-info", "decode response", err)
	}
	return info, nil
}

// CreateDeck creates a deck with the given name.
func (c *Client) CreateDeck(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return services.Wrap(services.ErrValidation, "ankiweb", "create-deck", "deck name required", nil)
	}
	if err := c.requireAuth("create-deck"); err != nil {
		return err
	}

	payload, err := wire.EncodeCreateDeckRequest(name)
	if err != nil {
		return services.Wrap(services.ErrValidation, "ankiweb", "create-deck", "encode request", err)
	}
	_, _, err = c.post(ctx, "create-deck", c.baseURL, "/svc/decks/create-deck", "/decks", payload, nil)
	return err
}

// RenameDeck renames the deck with the given id.
func (c *Client) RenameDeck(ctx context.Context, deckID int64, name string) error {
	if deckID == 0 {
		return services.Wrap(services.ErrValidation, "ankiweb", "rename-deck", "deck id required", nil)
	}
	if strings.TrimSpace(name) == "" {
		return services.Wrap(services.ErrValidation, "ankiweb", "rename-deck", "new name required", nil)
	}
	if err := c.requireAuth("rename-deck"); err != nil {
		return err
	}

	payload, err := wire.EncodeRenameDeckRequest(deckID, name)
	if err != nil {
		return services.Wrap(services.ErrValidation, "ankiweb", "rename-deck", "encode request", err)
	}
	_, _, err = c.post(ctx, "rename-deck", c.baseURL, "/svc/decks/rename-deck", "/decks", payload, nil)
	return err
}

// RemoveDeck deletes the deck with the given id.
func (c *Client) RemoveDeck(ctx context.Context, deckID int64) error {
	if deckID == 0 {
		return services.Wrap(services.ErrValidation, "ankiweb", "remove-deck", "deck id required", nil)
	}
	if err := c.requireAuth("remove-deck"); err != nil {
		return err
	}

	payload, err := wire.EncodeRemoveDeckRequest(deckID)
	if err != nil {
		return services.Wrap(services.ErrValidation, "ankiweb", "remove-deck", "encode request", err)
	}
	_, _, err = c.post(ctx, "remove-deck", c.baseURL, "/svc/decks/remove-deck", "/decks", payload, nil)
	return err
}

// minutesWestOfUTC converts the local zone offset into the minutes-west value
// the deck-list endpoint expects.
func minutesWestOfUTC(t time.Time) int32 {
	_, offsetSeconds := t.Zone()
	return int32(-offsetSeconds / 60)
}
