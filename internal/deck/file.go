package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File is the JSON interchange format for a deck. It is designed for
// round-tripping through external editors: export a deck, modify the cards
// array, and upsert it back.
type File struct {
	Name   string      `json:"name"`
	DeckID int64       `json:"deck_id,omitempty"`
	Cards  []CardEntry `json:"cards"`
}

// CardEntry is one card in a deck file. NoteID zero means the entry is not
// bound to an existing note. The optional type fields select how each side
// is rendered: card (default), code, image, or plain.
type CardEntry struct {
	NoteID     int64  `json:"note_id,omitempty"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Tags       string `json:"tags,omitempty"`
	FrontType  string `json:"front_type,omitempty"`
	BackType   string `json:"back_type,omitempty"`
	FrontTheme string `json:"front_theme,omitempty"`
	Lang       string `json:"lang,omitempty"`
}

// ExportFile converts a synced deck into its file representation.
func ExportFile(d Deck) File {
	f := File{Name: d.Name, DeckID: d.ID, Cards: make([]CardEntry, 0, len(d.Cards))}
	for _, c := range d.Cards {
		f.Cards = append(f.Cards, CardEntry{
			NoteID: c.NoteID,
			Front:  c.Front,
			Back:   c.Back,
			Tags:   c.Tags,
		})
	}
	return f
}

// ParseFile decodes a deck file and checks its shape.
func ParseFile(data []byte) (*File, error) {
	var probe struct {
		Name   string          `json:"name"`
		DeckID int64           `json:"deck_id"`
		Cards  json.RawMessage `json:"cards"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode deck file: %w", err)
	}
	if len(probe.Cards) == 0 || probe.Cards[0] != '[' {
		return nil, fmt.Errorf("deck file must contain a cards array")
	}

	var cards []CardEntry
	if err := json.Unmarshal(probe.Cards, &cards); err != nil {
		return nil, fmt.Errorf("decode cards array: %w", err)
	}
	return &File{Name: probe.Name, DeckID: probe.DeckID, Cards: cards}, nil
}

// ReadFile loads a deck file from disk. Only .json files are accepted.
func ReadFile(path string) (*File, error) {
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return nil, fmt.Errorf("deck import supports .json files only, got %q", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck file: %w", err)
	}
	return ParseFile(data)
}

// Marshal renders the file as indented JSON suitable for hand editing.
func (f File) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode deck file: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteTo saves the file to the given path.
func (f File) WriteTo(path string) error {
	data, err := f.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write deck file: %w", err)
	}
	return nil
}

// Dedupe removes entries repeating an earlier (front, back) pair so a single
// upsert call cannot add the same card twice.
func (f File) Dedupe() []CardEntry {
	seen := make(map[[2]string]struct{}, len(f.Cards))
	out := make([]CardEntry, 0, len(f.Cards))
	for _, c := range f.Cards {
		key := [2]string{c.Front, c.Back}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
