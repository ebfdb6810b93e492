package format

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"

	"rememberit/internal/config"
	"rememberit/internal/services"
)

// Field type tags carried in the data-ri-type attribute.
const (
	TypeCard  = "card"
	TypeCode  = "code"
	TypeImage = "image"
	TypePlain = "plain"
)

// Formatter renders card field values into self-describing HTML fragments.
// Every fragment carries data-ri-* attributes so ParseField can recover the
// original content and metadata.
type Formatter struct {
	templates     *TemplateStore
	defaultTheme  string
	maxImageBytes int64
	pickTheme     func(n int) int
}

// Option customizes a Formatter.
type Option func(*Formatter)

// WithTemplatesDir points the formatter at a user template directory.
func WithTemplatesDir(dir string) Option {
	return func(f *Formatter) { f.templates = NewTemplateStore(dir) }
}

// WithDefaultTheme sets the theme used when a card does not name one.
// "random" selects a pseudo-random theme per card.
func WithDefaultTheme(theme string) Option {
	return func(f *Formatter) {
		if theme != "" {
			f.defaultTheme = theme
		}
	}
}

// WithMaxImageBytes bounds encoded image size.
func WithMaxImageBytes(limit int64) Option {
	return func(f *Formatter) {
		if limit > 0 {
			f.maxImageBytes = limit
		}
	}
}

// WithThemePicker overrides random theme selection, mainly for tests.
func WithThemePicker(pick func(n int) int) Option {
	return func(f *Formatter) {
		if pick != nil {
			f.pickTheme = pick
		}
	}
}

// New constructs a Formatter with the default theme palette and image limit.
func New(opts ...Option) *Formatter {
	defaults := config.Default()
	f := &Formatter{
		templates:     NewTemplateStore(""),
		defaultTheme:  defaults.Format.DefaultTheme,
		maxImageBytes: defaults.Format.ImageMaxBytes,
		pickTheme:     rand.Intn,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFromConfig builds a Formatter honoring the loaded configuration.
func NewFromConfig(cfg *config.Config) *Formatter {
	if cfg == nil {
		return New()
	}
	return New(
		WithTemplatesDir(cfg.Format.TemplatesDir),
		WithDefaultTheme(cfg.Format.DefaultTheme),
		WithMaxImageBytes(cfg.Format.ImageMaxBytes),
	)
}

// Templates exposes the underlying template store.
func (f *Formatter) Templates() *TemplateStore { return f.templates }

// FormatQuestion wraps text in a themed card container. An empty or "random"
// theme picks one pseudo-randomly from the palette.
func (f *Formatter) FormatQuestion(text, theme string) (string, error) {
	theme = f.resolveTheme(theme)
	tpl, err := f.templates.Get(theme)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "format", "question", fmt.Sprintf("theme %q", theme), err)
	}
	body := render(tpl, text)
	return fmt.Sprintf(`<div data-ri-type=%q data-ri-theme=%q data-ri-content=%q>%s</div>`,
		TypeCard, theme, encodeContent(text), body), nil
}

// FormatPlain escapes text with no styling.
func (f *Formatter) FormatPlain(text string) string {
	return fmt.Sprintf(`<span data-ri-type=%q data-ri-content=%q>%s</span>`,
		TypePlain, encodeContent(text), escapeHTML(text))
}

// Field is the result of formatting or parsing a card field.
type Field struct {
	Type    string
	Lang    string
	Theme   string
	Content string
}

// FormatField dispatches on the declared field type. Unknown types fail with
// a validation error before any formatting happens.
func (f *Formatter) FormatField(value, fieldType, lang, theme string) (string, error) {
	switch fieldType {
	case "", TypeCard:
		return f.FormatQuestion(value, theme)
	case TypeCode:
		return f.FormatCode(value, lang)
	case TypeImage:
		return f.FormatImageFile(value)
	case TypePlain:
		return f.FormatPlain(value), nil
	default:
		return "", services.Wrap(services.ErrValidation, "format", "field",
			fmt.Sprintf("unknown field type %q", fieldType), nil)
	}
}

func (f *Formatter) resolveTheme(theme string) string {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		theme = f.defaultTheme
	}
	if theme == "" || theme == "random" {
		return Themes[f.pickTheme(len(Themes))]
	}
	return theme
}

func encodeContent(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

func decodeContent(encoded string) (string, bool) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}
