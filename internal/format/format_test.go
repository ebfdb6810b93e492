package format

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"rememberit/internal/config"
	"rememberit/internal/services"
)

func TestFormatQuestionCarriesMetadata(t *testing.T) {
	f := New()
	out, err := f.FormatQuestion("What is Go?", "blue")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	for _, want := range []string{"data-ri-type", "data-ri-theme", "data-ri-content", `data-ri-theme="blue"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "What is Go?") {
		t.Fatal("output missing question text")
	}
}

func TestFormatQuestionRandomThemeIsFromPalette(t *testing.T) {
	f := New(WithThemePicker(func(n int) int { return 2 }), WithDefaultTheme("random"))
	out, err := f.FormatQuestion("Q", "")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, `data-ri-theme="light"`) {
		t.Fatalf("picker index 2 should select light theme:\n%s", out)
	}
}

func TestFormatQuestionEveryTheme(t *testing.T) {
	f := New()
	for _, theme := range Themes {
		out, err := f.FormatQuestion("Test", theme)
		if err != nil {
			t.Fatalf("theme %s: %v", theme, err)
		}
		if len(out) < 50 {
			t.Fatalf("theme %s output suspiciously short", theme)
		}
	}
}

func TestFormatQuestionEscapesContent(t *testing.T) {
	f := New()
	out, err := f.FormatQuestion(`<b>&"`, "dark")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if strings.Contains(out, "<b>") {
		t.Fatal("raw markup leaked into output")
	}
	if !strings.Contains(out, "&lt;b&gt;") {
		t.Fatal("markup not escaped")
	}
}

func TestFormatCodeHighlightsKnownLanguage(t *testing.T) {
	f := New()
	out, err := f.FormatCode("def f(): pass", "python")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	// The highlighter spreads the visible text across token spans; the
	// literal source must still appear via the plain fallback copy.
	if !strings.Contains(out, "def f()") {
		t.Fatalf("output missing literal source:\n%s", out)
	}
	if !strings.Contains(out, "<template data-ri-plain>") {
		t.Fatalf("output missing plain fallback copy:\n%s", out)
	}
	// Highlighting produces styled spans around tokens.
	if !strings.Contains(out, "<span") {
		t.Fatalf("output missing highlighting wrapper:\n%s", out)
	}
	if !strings.Contains(out, `data-ri-lang="python"`) {
		t.Fatal("language metadata missing")
	}
}

func TestFormatCodeUnknownLanguageFallsBack(t *testing.T) {
	f := New()
	out, err := f.FormatCode("some <code>", "unknownlang123")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, "some &lt;code&gt;") {
		t.Fatalf("fallback should escape source:\n%s", out)
	}
}

func TestParseFieldRoundTrips(t *testing.T) {
	f := New()

	code, err := f.FormatCode("print('hello')", "python")
	if err != nil {
		t.Fatalf("format code: %v", err)
	}
	parsed := ParseField(code)
	if parsed.Type != TypeCode || parsed.Lang != "python" || parsed.Content != "print('hello')" {
		t.Fatalf("code parse = %+v", parsed)
	}

	card, err := f.FormatQuestion("What is Go?", "blue")
	if err != nil {
		t.Fatalf("format question: %v", err)
	}
	parsed = ParseField(card)
	if parsed.Type != TypeCard || parsed.Theme != "blue" || parsed.Content != "What is Go?" {
		t.Fatalf("card parse = %+v", parsed)
	}

	parsed = ParseField(f.FormatPlain("just & text"))
	if parsed.Type != TypePlain || parsed.Content != "just & text" {
		t.Fatalf("plain parse = %+v", parsed)
	}
}

func TestParseFieldPlainPassthrough(t *testing.T) {
	parsed := ParseField("Just plain text")
	if parsed.Type != TypePlain || parsed.Content != "Just plain text" {
		t.Fatalf("parse = %+v", parsed)
	}

	parsed = ParseField("<p>foreign markup</p>")
	if parsed.Type != TypePlain {
		t.Fatalf("foreign markup should classify as plain, got %+v", parsed)
	}
}

func TestFormatImageWithinLimit(t *testing.T) {
	f := New(WithMaxImageBytes(1 << 20))
	img := solidImage(100, 80)

	out, err := f.FormatImage(img)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Fatal("output missing data URI")
	}
	parsed := ParseField(out)
	if parsed.Type != TypeImage || !strings.HasPrefix(parsed.Content, "data:image/png") {
		t.Fatalf("image parse = %+v", parsed)
	}
}

func TestFormatImageDownscalesToFit(t *testing.T) {
	f := New(WithMaxImageBytes(40 << 10))
	img := noiseImage(512, 512)

	out, err := f.FormatImage(img)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, "data:image/png;base64,") {
		t.Fatal("output missing data URI")
	}
}

func TestFormatImageTooLarge(t *testing.T) {
	f := New(WithMaxImageBytes(64))
	_, err := f.FormatImage(noiseImage(128, 128))
	if !errors.Is(err, services.ErrImageTooLarge) {
		t.Fatalf("expected image too large, got %v", err)
	}
}

func TestNewFromConfigHonorsImageLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Format.ImageMaxBytes = 64
	f := NewFromConfig(&cfg)
	if _, err := f.FormatImage(noiseImage(128, 128)); !errors.Is(err, services.ErrImageTooLarge) {
		t.Fatalf("expected image too large, got %v", err)
	}
}

func TestSupportedLanguages(t *testing.T) {
	if len(SupportedLanguages) < 10 {
		t.Fatalf("supported languages list too short: %d", len(SupportedLanguages))
	}
	want := map[string]bool{"python": false, "javascript": false, "html": false, "css": false, "sql": false, "bash": false}
	for _, lang := range SupportedLanguages {
		if _, ok := want[lang]; ok {
			want[lang] = true
		}
	}
	for lang, found := range want {
		if !found {
			t.Fatalf("missing language %s", lang)
		}
	}
}

func TestUserTemplatesShadowBuiltins(t *testing.T) {
	dir := t.TempDir()
	f := New(WithTemplatesDir(dir))

	if _, err := f.Templates().Save("blue", "<section>{content}</section>"); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := f.FormatQuestion("Q", "blue")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, "<section>Q</section>") {
		t.Fatalf("user template not applied:\n%s", out)
	}

	deleted, err := f.Templates().Delete("blue")
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	if deleted, _ = f.Templates().Delete("blue"); deleted {
		t.Fatal("second delete should report not found")
	}
}

func TestTemplateSaveRequiresPlaceholder(t *testing.T) {
	store := NewTemplateStore(t.TempDir())
	if _, err := store.Save("bad", "<div>no placeholder</div>"); err == nil {
		t.Fatal("expected error for template without placeholder")
	}
}

func TestExportBuiltin(t *testing.T) {
	dir := t.TempDir()
	store := NewTemplateStore(dir)

	path, err := store.ExportBuiltin("gradient")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("exported outside templates dir: %s", path)
	}
	if _, err := store.ExportBuiltin("nope"); err == nil {
		t.Fatal("expected error for unknown builtin")
	}

	listed := store.List()
	if listed["gradient"] == "builtin" {
		t.Fatal("exported template should shadow the builtin in listings")
	}
}

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 30, G: 60, B: 120, A: 255})
		}
	}
	return img
}

// noiseImage resists PNG compression so size limits actually bite.
func noiseImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	seed := uint32(2463534242)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			seed ^= seed << 13
			seed ^= seed >> 17
			seed ^= seed << 5
			img.Set(x, y, color.RGBA{R: uint8(seed), G: uint8(seed >> 8), B: uint8(seed >> 16), A: 255})
		}
	}
	return img
}
