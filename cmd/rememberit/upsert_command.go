package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rememberit/internal/deck"
)

func newUpsertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upsert <file.json>",
		Short: "Apply a deck file, adding and updating cards as needed",
		Long: "Apply a deck file against the remote service. Cards already present\n" +
			"are skipped, cards with a matching front are updated, and the rest are\n" +
			"added. Pass - to read the file from stdin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			var applied deck.Deck
			if args[0] == "-" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				file, err := deck.ParseFile(data)
				if err != nil {
					return err
				}
				applied, err = client.UpsertDeck(cmd.Context(), file)
				if err != nil {
					return err
				}
			} else {
				applied, err = client.LoadDeckFile(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deck %s now has %d cards\n", applied.Path, len(applied.Cards))
			return nil
		},
	}
}
