package rememberit

import (
	"context"
	"sync"

	"rememberit/internal/deck"
)

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide client, constructing it from configuration
// on first use. All package-level operations go through it.
func Default() (*Client, error) {
	defaultOnce.Do(func() {
		defaultClient, defaultErr = New()
	})
	return defaultClient, defaultErr
}

// Login authenticates the default client and persists the session.
func Login(ctx context.Context, email, password string) error {
	c, err := Default()
	if err != nil {
		return err
	}
	return c.Login(ctx, email, password)
}

// Logout clears the default client's stored credential.
func Logout() error {
	c, err := Default()
	if err != nil {
		return err
	}
	return c.Logout()
}

// Sync refreshes the default client's deck cache from the remote service.
func Sync(ctx context.Context) (deck.Collection, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Sync(ctx)
}

// Decks returns the cached collection, syncing first when empty.
func Decks(ctx context.Context) (deck.Collection, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Decks(ctx)
}

// Deck resolves one deck by name, path, or id string.
func Deck(ctx context.Context, key string) (deck.Deck, error) {
	c, err := Default()
	if err != nil {
		return deck.Deck{}, err
	}
	return c.Deck(ctx, key)
}

// CreateDeck creates a deck remotely and returns the synced result.
func CreateDeck(ctx context.Context, name string) (deck.Deck, error) {
	c, err := Default()
	if err != nil {
		return deck.Deck{}, err
	}
	return c.CreateDeck(ctx, name)
}

// RenameDeck renames a deck addressed by name, path, or id.
func RenameDeck(ctx context.Context, ref, newName string) error {
	c, err := Default()
	if err != nil {
		return err
	}
	return c.RenameDeck(ctx, ref, newName)
}

// DeleteDeck removes a deck addressed by name, path, or id.
func DeleteDeck(ctx context.Context, ref string) error {
	c, err := Default()
	if err != nil {
		return err
	}
	return c.DeleteDeck(ctx, ref)
}

// UpsertDeck applies a deck file through the default client.
func UpsertDeck(ctx context.Context, file *deck.File) (deck.Deck, error) {
	c, err := Default()
	if err != nil {
		return deck.Deck{}, err
	}
	return c.UpsertDeck(ctx, file)
}

// LoadDeckFile reads a deck file from disk and upserts it.
func LoadDeckFile(ctx context.Context, path string) (deck.Deck, error) {
	c, err := Default()
	if err != nil {
		return deck.Deck{}, err
	}
	return c.LoadDeckFile(ctx, path)
}

// ExportDeck writes a deck as an editable JSON file.
func ExportDeck(ctx context.Context, ref, path string) error {
	c, err := Default()
	if err != nil {
		return err
	}
	return c.ExportDeck(ctx, ref, path)
}
