package deck

import (
	"path/filepath"
	"reflect"
	"testing"

	"rememberit/internal/wire"
)

func sampleTree() *wire.DeckNode {
	return &wire.DeckNode{
		Children: []wire.DeckNode{
			{
				DeckID:   1,
				Name:     "Languages",
				Level:    1,
				NewCount: 2,
				Children: []wire.DeckNode{
					{DeckID: 2, Name: "Spanish", Level: 2, TotalInDeck: 10},
					{DeckID: 3, Name: "French", Level: 2, TotalInDeck: 4},
				},
			},
			{DeckID: 4, Name: "Go", Level: 1, TotalInDeck: 7},
		},
	}
}

func TestFlattenBuildsPaths(t *testing.T) {
	rows := Flatten(sampleTree())

	paths := make([]string, 0, len(rows))
	for _, d := range rows {
		paths = append(paths, d.Path)
	}
	want := []string{"Languages", "Languages::Spanish", "Languages::French", "Go"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}

	spanish, ok := Collection(rows).Lookup("Languages::Spanish")
	if !ok {
		t.Fatal("lookup by path failed")
	}
	if spanish.ID != 2 || spanish.TotalInDeck != 10 {
		t.Fatalf("unexpected deck: %+v", spanish)
	}
}

func TestFlattenNilTree(t *testing.T) {
	if rows := Flatten(nil); rows != nil {
		t.Fatalf("expected nil rows, got %v", rows)
	}
}

func TestCollectionLookup(t *testing.T) {
	rows := Flatten(sampleTree())

	if _, ok := rows.Lookup("4"); !ok {
		t.Fatal("lookup by id string failed")
	}
	if _, ok := rows.Lookup("Spanish"); !ok {
		t.Fatal("lookup by bare name failed")
	}
	if _, ok := rows.Lookup("Klingon"); ok {
		t.Fatal("lookup should miss for unknown deck")
	}
	if d, ok := rows.ByID(3); !ok || d.Name != "French" {
		t.Fatalf("ByID(3) = %+v ok=%v", d, ok)
	}
}

func TestLookupNormalizesUnicode(t *testing.T) {
	// Server name composed (U+00E9), query decomposed (e + U+0301).
	rows := Collection{{ID: 1, Name: "Caf\u00e9", Path: "Caf\u00e9"}}
	if _, ok := rows.Lookup("Cafe\u0301"); !ok {
		t.Fatal("decomposed query should match composed deck name")
	}
}

func TestSplitFrontBack(t *testing.T) {
	front, back := SplitFrontBack("hola / hello")
	if front != "hola" || back != "hello" {
		t.Fatalf("split = %q/%q", front, back)
	}

	front, back = SplitFrontBack("  lonely  ")
	if front != "lonely" || back != "" {
		t.Fatalf("split without separator = %q/%q", front, back)
	}
}

func TestCardLookup(t *testing.T) {
	d := Deck{Cards: []Card{
		{NoteID: 10, Front: "Hola", Back: "Hello"},
		{NoteID: 11, Front: "Adios", Back: "Bye"},
	}}

	if c, ok := d.Card("10"); !ok || c.Front != "Hola" {
		t.Fatalf("lookup by id: %+v ok=%v", c, ok)
	}
	if c, ok := d.Card("adi"); !ok || c.NoteID != 11 {
		t.Fatalf("lookup by front substring: %+v ok=%v", c, ok)
	}
	if _, ok := d.Card("missing"); ok {
		t.Fatal("lookup should miss")
	}
}

func TestDeckFileRoundTrip(t *testing.T) {
	d := Deck{
		ID:   2,
		Name: "Spanish",
		Cards: []Card{
			{NoteID: 10, Front: "Hola", Back: "Hello"},
			{Front: "Uno", Back: "One"},
		},
	}

	path := filepath.Join(t.TempDir(), "spanish.json")
	if err := ExportFile(d).WriteTo(path); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Name != "Spanish" || got.DeckID != 2 {
		t.Fatalf("header mismatch: %+v", got)
	}
	if len(got.Cards) != 2 || got.Cards[0].NoteID != 10 || got.Cards[1].Front != "Uno" {
		t.Fatalf("cards mismatch: %+v", got.Cards)
	}
}

func TestReadFileRejectsNonJSON(t *testing.T) {
	if _, err := ReadFile("deck.csv"); err == nil {
		t.Fatal("expected error for non-json extension")
	}
}

func TestParseFileRequiresCardsArray(t *testing.T) {
	if _, err := ParseFile([]byte(`{"name":"x","cards":{}}`)); err == nil {
		t.Fatal("expected error when cards is not an array")
	}
	if _, err := ParseFile([]byte(`{"name":"x"}`)); err == nil {
		t.Fatal("expected error when cards is missing")
	}
}

func TestDedupe(t *testing.T) {
	f := File{Cards: []CardEntry{
		{Front: "a", Back: "1"},
		{Front: "a", Back: "1"},
		{Front: "a", Back: "2"},
	}}
	got := f.Dedupe()
	if len(got) != 2 {
		t.Fatalf("deduped len = %d, want 2", len(got))
	}
}
