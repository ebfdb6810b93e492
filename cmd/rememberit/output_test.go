package main

import (
	"bytes"
	"strings"
	"testing"

	"rememberit/internal/deck"
)

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"Deck", "Cards"},
		[][]string{{"Spanish", "10"}, {"French"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	if !strings.Contains(out, "Spanish") || !strings.Contains(out, "French") {
		t.Fatalf("table missing rows:\n%s", out)
	}
}

func TestRenderPlainTabSeparated(t *testing.T) {
	var buf bytes.Buffer
	renderPlain(&buf, [][]string{{"a", "b"}, {"c", "d"}})
	if buf.String() != "a\tb\nc\td\n" {
		t.Fatalf("plain output = %q", buf.String())
	}
}

func TestIndentDeckName(t *testing.T) {
	if got := indentDeckName(deck.Deck{Name: "Top", Level: 1}); got != "Top" {
		t.Fatalf("top level = %q", got)
	}
	if got := indentDeckName(deck.Deck{Name: "Child", Level: 2}); got != "  Child" {
		t.Fatalf("nested = %q", got)
	}
}

func TestDeckFileName(t *testing.T) {
	if got := deckFileName("Languages::Spanish"); got != "Languages-Spanish.json" {
		t.Fatalf("file name = %q", got)
	}
}
