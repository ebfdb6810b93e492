package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rememberit"
	"rememberit/internal/deck"
	"rememberit/internal/format"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the local deck cache from the remote service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			decks, err := client.Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d decks\n", len(decks))
			return nil
		},
	}
}

func newDecksCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List decks with their study counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			decks, err := client.Decks(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, deckSummaries(decks))
			}

			rows := make([][]string, 0, len(decks))
			for _, d := range decks {
				rows = append(rows, []string{
					indentDeckName(d),
					strconv.FormatUint(uint64(d.NewCount), 10),
					strconv.FormatUint(uint64(d.LearnCount), 10),
					strconv.FormatUint(uint64(d.ReviewCount), 10),
					strconv.FormatUint(uint64(d.TotalInDeck), 10),
				})
			}

			out := cmd.OutOrStdout()
			if isTerminal(out) {
				headers := []string{"Deck", "New", "Learn", "Review", "Cards"}
				aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
			} else {
				renderPlain(out, rows)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newDeckCommand(ctx *commandContext) *cobra.Command {
	deckCmd := &cobra.Command{
		Use:   "deck",
		Short: "Inspect or export a single deck",
	}
	deckCmd.AddCommand(newDeckShowCommand(ctx))
	deckCmd.AddCommand(newDeckExportCommand(ctx))
	return deckCmd
}

func newDeckShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <deck>",
		Short: "Show a deck's cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			target, err := client.Deck(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, rememberit.ExportUpsert(target))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (id %d, %d cards)\n", target.Path, target.ID, len(target.Cards))
			rows := make([][]string, 0, len(target.Cards))
			for _, card := range target.Cards {
				rows = append(rows, []string{
					strconv.FormatInt(card.NoteID, 10),
					format.ParseField(card.Front).Content,
					format.ParseField(card.Back).Content,
				})
			}
			if isTerminal(out) {
				headers := []string{"Note", "Front", "Back"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
			} else {
				renderPlain(out, rows)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the deck in upsert file format")
	return cmd
}

func newDeckExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <deck>",
		Short: "Write a deck as an editable JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			target := strings.TrimSpace(outPath)
			if target == "" {
				target = deckFileName(args[0])
			}
			if err := client.ExportDeck(cmd.Context(), args[0], target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Destination file (defaults to <deck>.json)")
	return cmd
}

func newCreateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			created, err := client.CreateDeck(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created deck %s (id %d)\n", created.Path, created.ID)
			return nil
		},
	}
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <deck> <new-name>",
		Short: "Rename a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.RenameDeck(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "delete <deck>",
		Short: "Delete a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("deleting a deck removes its cards; re-run with --yes to confirm")
			}
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.DeleteDeck(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Skip the confirmation check")
	return cmd
}

type deckSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	NewCount    uint32 `json:"new_count"`
	LearnCount  uint32 `json:"learn_count"`
	ReviewCount uint32 `json:"review_count"`
	TotalInDeck uint32 `json:"total_in_deck"`
}

func deckSummaries(decks deck.Collection) []deckSummary {
	out := make([]deckSummary, 0, len(decks))
	for _, d := range decks {
		out = append(out, deckSummary{
			ID:          d.ID,
			Name:        d.Name,
			Path:        d.Path,
			NewCount:    d.NewCount,
			LearnCount:  d.LearnCount,
			ReviewCount: d.ReviewCount,
			TotalInDeck: d.TotalInDeck,
		})
	}
	return out
}

// indentDeckName indents nested decks so the table reads as a tree.
func indentDeckName(d deck.Deck) string {
	if d.Level <= 1 {
		return d.Name
	}
	return strings.Repeat("  ", int(d.Level)-1) + d.Name
}

// deckFileName derives a file name from a deck reference, flattening path
// separators.
func deckFileName(ref string) string {
	name := strings.ReplaceAll(ref, deck.PathSeparator, "-")
	name = strings.ReplaceAll(name, "/", "-")
	return name + ".json"
}
