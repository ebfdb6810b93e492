package assets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"rememberit/internal/logging"
	"rememberit/internal/services"
	"rememberit/internal/session"
)

// EnvCookieHeader overrides the stored cookie when set.
const EnvCookieHeader = "COOKIE_HEADER"

// defaultAssetPattern matches absolute asset URLs referenced by the page.
var defaultAssetPattern = regexp.MustCompile(
	`https?://[^\s"'<>()]+\.(?:js|css|png|jpe?g|gif|svg|ico|woff2?|ttf|wasm)(?:\?[^\s"'<>()]*)?`)

// HTTPDoer describes the HTTP client used for page and asset requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher downloads the assets referenced by an authenticated page.
type Fetcher struct {
	httpClient HTTPDoer
	cookie     string
	userAgent  string
	outputDir  string
	pattern    *regexp.Regexp
	logger     *slog.Logger
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.httpClient = client
		}
	}
}

// WithCookie sets the Cookie header sent with every request.
func WithCookie(cookie string) Option {
	return func(f *Fetcher) { f.cookie = strings.TrimSpace(cookie) }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua = strings.TrimSpace(ua); ua != "" {
			f.userAgent = ua
		}
	}
}

// WithOutputDir sets where assets and the header dump land.
func WithOutputDir(dir string) Option {
	return func(f *Fetcher) {
		if dir != "" {
			f.outputDir = dir
		}
	}
}

// WithPattern overrides the asset URL extraction pattern.
func WithPattern(pattern *regexp.Regexp) Option {
	return func(f *Fetcher) {
		if pattern != nil {
			f.pattern = pattern
		}
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New constructs a Fetcher writing into outputDir.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		outputDir:  "assets",
		pattern:    defaultAssetPattern,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ResolveCookie picks the credential for asset fetching: the COOKIE_HEADER
// environment variable wins over the stored session.
func ResolveCookie(sess session.Session) string {
	if env := strings.TrimSpace(os.Getenv(EnvCookieHeader)); env != "" {
		return env
	}
	if sess.CookieHeaderWeb != "" {
		return sess.CookieHeaderWeb
	}
	return sess.CookieHeader
}

// Asset is one downloaded file.
type Asset struct {
	URL  string
	Path string
	Size int64
}

// Result summarizes a fetch run.
type Result struct {
	PageURL     string
	HeadersFile string
	Assets      []Asset
}

// Fetch downloads the page, extracts asset URLs, and saves each asset plus a
// dump of the page response headers. Zero extracted assets is an error.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Result, error) {
	if f.cookie == "" {
		return nil, services.Wrap(services.ErrAuthentication, "assets", "fetch",
			"no cookie credential (set "+EnvCookieHeader+" or log in)", nil)
	}
	if _, err := url.ParseRequestURI(pageURL); err != nil {
		return nil, services.Wrap(services.ErrValidation, "assets", "fetch", "page url", err)
	}
	if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure output directory: %w", err)
	}

	body, headers, err := f.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	headersFile := filepath.Join(f.outputDir, "headers.txt")
	if err := writeHeaderDump(headersFile, pageURL, headers); err != nil {
		return nil, err
	}

	urls := dedupe(f.pattern.FindAllString(string(body), -1))
	if len(urls) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "assets", "fetch", "no asset urls found in page", nil)
	}

	result := &Result{PageURL: pageURL, HeadersFile: headersFile}
	taken := make(map[string]int)
	for _, assetURL := range urls {
		data, _, err := f.get(ctx, assetURL)
		if err != nil {
			return nil, err
		}
		name := uniqueName(taken, fileNameFor(assetURL))
		dest := filepath.Join(f.outputDir, name)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return nil, fmt.Errorf("write asset %s: %w", name, err)
		}
		result.Assets = append(result.Assets, Asset{URL: assetURL, Path: dest, Size: int64(len(data))})
		f.logger.Debug("asset saved",
			logging.String(logging.FieldComponent, "assets"),
			logging.String("url", assetURL),
			logging.String("path", dest))
	}
	return result, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrValidation, "assets", "fetch", "build request", err)
	}
	req.Header.Set("Cookie", f.cookie)
	req.Header.Set("Accept", "*/*")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrNetwork, "assets", "fetch", "get "+rawURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrNetwork, "assets", "fetch", "read "+rawURL, err)
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, nil, services.Wrap(services.ErrAuthentication, "assets", "fetch",
			fmt.Sprintf("%s returned %d", rawURL, resp.StatusCode), nil)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, nil, services.Wrap(services.ErrRemote, "assets", "fetch",
			fmt.Sprintf("%s returned %d", rawURL, resp.StatusCode), nil)
	}
	return body, resp.Header, nil
}

func writeHeaderDump(path, pageURL string, headers http.Header) error {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", pageURL)
	for _, key := range sortedKeys(headers) {
		for _, value := range headers[key] {
			fmt.Fprintf(&b, "%s: %s\n", key, value)
		}
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write header dump: %w", err)
	}
	return nil
}

func sortedKeys(headers http.Header) []string {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

func fileNameFor(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "asset"
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "asset"
	}
	return name
}

func uniqueName(taken map[string]int, name string) string {
	count := taken[name]
	taken[name] = count + 1
	if count == 0 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(name, ext), count, ext)
}
