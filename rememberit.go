// Package rememberit is a client library for syncing flashcard decks with a
// remote flashcard service. It composes a session store, a sync client, a
// local deck cache, and a card formatter behind one facade. A package-level
// default client covers the common single-user case; construct a Client
// directly for anything else.
package rememberit

import (
	"context"
	"fmt"
	"log/slog"

	"rememberit/internal/cache"
	"rememberit/internal/config"
	"rememberit/internal/deck"
	"rememberit/internal/format"
	"rememberit/internal/logging"
	"rememberit/internal/services"
	"rememberit/internal/services/ankiweb"
	"rememberit/internal/session"
	"rememberit/internal/wire"
)

// Remote is the sync client surface the facade depends on.
type Remote interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	DeckListInfo(ctx context.Context) (*wire.DeckListInfo, error)
	SearchCards(ctx context.Context, query string) ([]deck.Card, error)
	AddNote(ctx context.Context, deckID int64, front, back, tags string) error
	UpdateNote(ctx context.Context, noteID, deckID int64, front, back, tags string) error
	CreateDeck(ctx context.Context, name string) error
	RenameDeck(ctx context.Context, deckID int64, name string) error
	RemoveDeck(ctx context.Context, deckID int64) error
	Session() session.Session
	UseSession(session.Session)
}

// Client is the public facade over the sync client, cache, and formatter.
type Client struct {
	cfg       *config.Config
	logger    *slog.Logger
	sessions  session.Store
	remote    Remote
	cache     *cache.Store
	formatter *format.Formatter
}

// Option customizes a Client.
type Option func(*clientDeps)

type clientDeps struct {
	cfg       *config.Config
	logger    *slog.Logger
	sessions  session.Store
	remote    Remote
	cache     *cache.Store
	formatter *format.Formatter
}

// WithConfig supplies a loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(d *clientDeps) { d.cfg = cfg }
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *clientDeps) { d.logger = logger }
}

// WithSessionStore overrides credential persistence.
func WithSessionStore(store session.Store) Option {
	return func(d *clientDeps) { d.sessions = store }
}

// WithRemote overrides the sync client.
func WithRemote(remote Remote) Option {
	return func(d *clientDeps) { d.remote = remote }
}

// WithCache overrides the deck cache.
func WithCache(store *cache.Store) Option {
	return func(d *clientDeps) { d.cache = store }
}

// WithFormatter overrides the card formatter.
func WithFormatter(f *format.Formatter) Option {
	return func(d *clientDeps) { d.formatter = f }
}

// New constructs a Client. Missing dependencies are built from configuration:
// config from its default path, the session from settings.json, the cache
// from the configured path.
func New(opts ...Option) (*Client, error) {
	var deps clientDeps
	for _, opt := range opts {
		opt(&deps)
	}

	if deps.cfg == nil {
		cfg, _, _, err := config.Load("")
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		deps.cfg = cfg
	}
	if deps.logger == nil {
		logger, err := logging.New(logging.Options{
			Level:       deps.cfg.Logging.Level,
			Format:      deps.cfg.Logging.Format,
			OutputPaths: outputPaths(deps.cfg),
		})
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		deps.logger = logger
	}
	if deps.sessions == nil {
		store, err := session.DefaultStore()
		if err != nil {
			return nil, err
		}
		deps.sessions = store
	}
	if deps.remote == nil {
		sess, err := deps.sessions.Load()
		if err != nil {
			return nil, err
		}
		deps.remote = ankiweb.NewFromConfig(deps.cfg, sess, deps.logger)
	}
	if deps.cache == nil {
		store, err := cache.Open(deps.cfg, deps.logger)
		if err != nil {
			return nil, err
		}
		deps.cache = store
	}
	if deps.formatter == nil {
		deps.formatter = format.NewFromConfig(deps.cfg)
	}

	return &Client{
		cfg:       deps.cfg,
		logger:    deps.logger,
		sessions:  deps.sessions,
		remote:    deps.remote,
		cache:     deps.cache,
		formatter: deps.formatter,
	}, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() *config.Config { return c.cfg }

// Formatter returns the card formatter.
func (c *Client) Formatter() *format.Formatter { return c.formatter }

// Session returns the current credential record.
func (c *Client) Session() session.Session { return c.remote.Session() }

// Close releases the cache lock and database handle.
func (c *Client) Close() error { return c.cache.Close() }

// Login exchanges credentials for a sync key and persists the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	sess, err := c.remote.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := c.sessions.Save(sess); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Logout clears the stored credential. Subsequent sync calls fail with an
// authentication error.
func (c *Client) Logout() error {
	if err := c.sessions.Clear(); err != nil {
		return err
	}
	c.remote.UseSession(session.Session{})
	return nil
}

// Sync fetches the remote deck tree and every deck's cards, then replaces
// the local cache with the result.
func (c *Client) Sync(ctx context.Context) (deck.Collection, error) {
	info, err := c.remote.DeckListInfo(ctx)
	if err != nil {
		return nil, err
	}
	decks := deck.Flatten(info.TopNode)
	for i := range decks {
		cards, err := c.remote.SearchCards(ctx, decks[i].SearchQuery())
		if err != nil {
			return nil, err
		}
		decks[i].Cards = cards
	}
	if err := c.cache.ReplaceAll(ctx, decks); err != nil {
		return nil, err
	}
	c.logger.Info("synced collection",
		logging.String(logging.FieldComponent, "facade"),
		logging.Int("decks", len(decks)))
	return c.cache.Decks(), nil
}

// Decks returns the cached collection, syncing first when the cache is
// empty.
func (c *Client) Decks(ctx context.Context) (deck.Collection, error) {
	if c.cache.Empty() {
		return c.Sync(ctx)
	}
	return c.cache.Decks(), nil
}

// Deck resolves one deck by name, path, or id string.
func (c *Client) Deck(ctx context.Context, key string) (deck.Deck, error) {
	if c.cache.Empty() {
		if _, err := c.Sync(ctx); err != nil {
			return deck.Deck{}, err
		}
	}
	return c.cache.Get(key)
}

// CreateDeck creates a deck remotely, resyncs, and returns the new deck.
func (c *Client) CreateDeck(ctx context.Context, name string) (deck.Deck, error) {
	if err := c.remote.CreateDeck(ctx, name); err != nil {
		return deck.Deck{}, err
	}
	decks, err := c.Sync(ctx)
	if err != nil {
		return deck.Deck{}, err
	}
	created, ok := decks.Lookup(name)
	if !ok {
		return deck.Deck{}, services.Wrap(services.ErrRemote, "facade", "create-deck",
			fmt.Sprintf("deck %q not present after creation", name), nil)
	}
	return created, nil
}

// RenameDeck renames a deck addressed by name, path, or id. The cache entry
// moves to the new name only after the remote confirms.
func (c *Client) RenameDeck(ctx context.Context, ref, newName string) error {
	target, err := c.Deck(ctx, ref)
	if err != nil {
		return err
	}
	if err := c.remote.RenameDeck(ctx, target.ID, newName); err != nil {
		return err
	}
	return c.cache.ApplyRename(ctx, target.ID, newName)
}

// DeleteDeck removes a deck addressed by name, path, or id.
func (c *Client) DeleteDeck(ctx context.Context, ref string) error {
	target, err := c.Deck(ctx, ref)
	if err != nil {
		return err
	}
	if err := c.remote.RemoveDeck(ctx, target.ID); err != nil {
		return err
	}
	return c.cache.Remove(ctx, target.ID)
}

func outputPaths(cfg *config.Config) []string {
	if cfg.Logging.File != "" {
		return []string{"stderr", cfg.Logging.File}
	}
	return nil
}
