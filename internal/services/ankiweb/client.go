package ankiweb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rememberit/internal/config"
	"rememberit/internal/logging"
	"rememberit/internal/services"
	"rememberit/internal/session"
)

// HTTPDoer describes the HTTP client used for remote calls.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the remote flashcard service. Deck and search endpoints
// live on the base host, the note editor on a separate editor host, and
// login on the sync host.
type Client struct {
	httpClient HTTPDoer
	baseURL    string
	editorURL  string
	syncURL    string
	userAgent  string
	modelID    int64
	session    session.Session
	logger     *slog.Logger
	now        func() time.Time
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the deck/search host (useful for tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithEditorURL overrides the note editor host.
func WithEditorURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.editorURL = strings.TrimRight(base, "/")
		}
	}
}

// WithSyncURL overrides the login host.
func WithSyncURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.syncURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// WithModelID sets the note type used when adding cards.
func WithModelID(id int64) Option {
	return func(c *Client) {
		if id > 0 {
			c.modelID = id
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSession seeds the client with a stored session.
func WithSession(sess session.Session) Option {
	return func(c *Client) {
		c.session = sess
	}
}

// WithClock overrides the time source used for timezone offsets.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient constructs a remote client from config defaults and options.
func NewClient(opts ...Option) *Client {
	defaults := config.Default()
	client := &Client{
		httpClient: &http.Client{Timeout: time.Duration(defaults.Remote.TimeoutSeconds) * time.Second},
		baseURL:    defaults.Remote.BaseURL,
		editorURL:  defaults.Remote.EditorURL,
		syncURL:    defaults.Remote.SyncURL,
		userAgent:  defaults.Remote.UserAgent,
		modelID:    defaults.Remote.ModelID,
		logger:     logging.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// NewFromConfig builds a client honoring the loaded configuration.
func NewFromConfig(cfg *config.Config, sess session.Session, logger *slog.Logger, opts ...Option) *Client {
	base := []Option{WithSession(sess), WithLogger(logger)}
	if cfg != nil {
		base = append(base,
			WithBaseURL(cfg.Remote.BaseURL),
			WithEditorURL(cfg.Remote.EditorURL),
			WithSyncURL(cfg.Remote.SyncURL),
			WithUserAgent(cfg.Remote.UserAgent),
			WithModelID(cfg.Remote.ModelID),
			WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Remote.TimeoutSeconds) * time.Second}),
		)
	}
	return NewClient(append(base, opts...)...)
}

// Session returns the session currently attached to the client.
func (c *Client) Session() session.Session { return c.session }

// UseSession replaces the attached session.
func (c *Client) UseSession(sess session.Session) { c.session = sess }

// requireAuth fails before any network traffic when no credential is stored.
func (c *Client) requireAuth(operation string) error {
	if c.session.Authenticated() {
		return nil
	}
	if c.session.CookieHeader != "" || c.session.CookieHeaderWeb != "" || c.session.CookieHeaderEditor != "" {
		return nil
	}
	return services.Wrap(services.ErrAuthentication, "ankiweb", operation, "not logged in", nil)
}

// post sends an octet-stream payload and returns the response body along
// with the HTTP status. Transport failures map to ErrNetwork, 401/403 to
// ErrAuthentication, and any other status >= 400 to ErrRemote.
func (c *Client) post(ctx context.Context, operation, base, path, referer string, payload []byte, extra http.Header) ([]byte, int, error) {
	endpoint := base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, services.Wrap(services.ErrValidation, "ankiweb", operation, "build request", err)
	}

	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Origin", base)
	if referer != "" {
		req.Header.Set("Referer", base+referer)
	}
	if host := hostOf(endpoint); host != "" {
		if cookie := c.session.CookieFor(host); cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
	}
	if c.session.SyncKey != "" {
		req.Header.Set("anki-sync", syncMetaHeader(c.session.SyncKey))
	}
	for key, values := range extra {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, services.Wrap(services.ErrNetwork, "ankiweb", operation, "contact "+hostOf(endpoint), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, services.Wrap(services.ErrNetwork, "ankiweb", operation, "read response", err)
	}

	c.logger.Debug("remote call",
		logging.String(logging.FieldComponent, "ankiweb"),
		logging.String("operation", operation),
		logging.String("url", endpoint),
		logging.Int("status", resp.StatusCode),
		logging.Int("response_bytes", len(body)))

	var callErr error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		callErr = services.Wrap(services.ErrAuthentication, "ankiweb", operation,
			fmt.Sprintf("remote rejected credentials (%d)", resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		callErr = services.Wrap(services.ErrRemote, "ankiweb", operation,
			fmt.Sprintf("remote returned %d %s", resp.StatusCode, strings.TrimSpace(http.StatusText(resp.StatusCode))), nil)
	}
	if callErr != nil {
		c.logger.Warn("remote call failed",
			logging.String(logging.FieldComponent, "ankiweb"),
			logging.String("operation", operation),
			logging.String(logging.FieldErrorKind, services.Kind(callErr)),
			logging.Error(callErr))
	}
	return body, resp.StatusCode, callErr
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}
