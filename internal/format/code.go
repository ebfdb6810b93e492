package format

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"rememberit/internal/services"
)

// SupportedLanguages lists the language names FormatCode highlights. Other
// names fall back to an unstyled code block.
var SupportedLanguages = []string{
	"bash", "c", "cpp", "csharp", "css", "go", "html", "java", "javascript",
	"json", "kotlin", "markdown", "python", "ruby", "rust", "shell", "sql",
	"swift", "typescript", "yaml",
}

const highlightStyle = "monokai"

// FormatCode renders source text as a highlighted code card. Unknown
// languages render escaped but unhighlighted. The fragment always carries an
// escaped plain copy of the source in an inert template element, since the
// highlighter splits the visible text across per-token spans.
func (f *Formatter) FormatCode(source, lang string) (string, error) {
	tpl, err := f.templates.Get("code")
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "format", "code", "code template", err)
	}

	lang = strings.ToLower(strings.TrimSpace(lang))
	body, highlighted := highlight(source, lang)
	if !highlighted {
		body = escapeHTML(source)
	}

	rendered := renderRaw(tpl, body)
	return fmt.Sprintf(`<div data-ri-type=%q data-ri-lang=%q data-ri-content=%q>%s<template data-ri-plain>%s</template></div>`,
		TypeCode, lang, encodeContent(source), rendered, escapeHTML(source)), nil
}

// highlight runs chroma over the source. The second return reports whether a
// real lexer matched the language.
func highlight(source, lang string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", false
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(false),
		chromahtml.PreventSurroundingPre(true),
	)
	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", false
	}
	return buf.String(), true
}
