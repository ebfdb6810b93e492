package deck

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PathSeparator joins nested deck names into a full path.
const PathSeparator = "::"

// Card is one note in a deck, as reported by card search.
type Card struct {
	NoteID  int64
	Front   string
	Back    string
	Tags    string
	RawText string
	EditURL string
}

// Deck is a single deck with its counters and, once synced, its cards.
type Deck struct {
	ID                     int64
	Name                   string
	Path                   string
	Level                  uint32
	NewCount               uint32
	LearnCount             uint32
	ReviewCount            uint32
	TotalInDeck            uint32
	TotalIncludingChildren uint32
	Cards                  []Card
}

// SearchQuery returns the card search query that selects this deck's notes.
func (d Deck) SearchQuery() string {
	name := d.Path
	if name == "" {
		name = d.Name
	}
	return "deck:" + name
}

// Card returns the first card whose note id matches key exactly or whose
// front contains key case-insensitively.
func (d Deck) Card(key string) (Card, bool) {
	lower := strings.ToLower(key)
	for _, c := range d.Cards {
		if c.NoteID != 0 && strconv.FormatInt(c.NoteID, 10) == key {
			return c, true
		}
		if strings.Contains(strings.ToLower(c.Front), lower) {
			return c, true
		}
	}
	return Card{}, false
}

// Collection is an ordered set of decks.
type Collection []Deck

// Lookup resolves a deck by id, name, or full path. Names are compared in
// NFC form so terminal input matches server names regardless of how either
// side composed its accents.
func (c Collection) Lookup(key string) (Deck, bool) {
	folded := norm.NFC.String(key)
	for _, d := range c {
		if strconv.FormatInt(d.ID, 10) == key ||
			norm.NFC.String(d.Name) == folded ||
			norm.NFC.String(d.Path) == folded {
			return d, true
		}
	}
	return Deck{}, false
}

// ByID resolves a deck by its numeric id.
func (c Collection) ByID(id int64) (Deck, bool) {
	for _, d := range c {
		if d.ID == id {
			return d, true
		}
	}
	return Deck{}, false
}

// Names lists deck paths in collection order, used in error messages when a
// lookup misses.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for _, d := range c {
		names = append(names, d.Path)
	}
	return names
}

// SplitFrontBack separates a search result row into front and back. The
// server joins the two fields with " / ".
func SplitFrontBack(text string) (front, back string) {
	if idx := strings.Index(text, " / "); idx >= 0 {
		return strings.TrimSpace(text[:idx]), strings.TrimSpace(text[idx+3:])
	}
	return strings.TrimSpace(text), ""
}
