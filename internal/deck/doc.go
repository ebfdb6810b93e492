// Package deck holds the deck and card models shared by the sync client, the
// local cache, and the CLI, plus the JSON deck-file interchange format.
package deck
