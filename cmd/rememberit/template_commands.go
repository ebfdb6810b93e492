package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rememberit/internal/format"
)

func newTemplatesCommand(ctx *commandContext) *cobra.Command {
	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage card templates",
	}
	templatesCmd.AddCommand(newTemplatesListCommand(ctx))
	templatesCmd.AddCommand(newTemplatesExportCommand(ctx))
	templatesCmd.AddCommand(newTemplatesRemoveCommand(ctx))
	return templatesCmd
}

func (c *commandContext) templateStore() (*format.TemplateStore, error) {
	client, err := c.ensureClient()
	if err != nil {
		return nil, err
	}
	return client.Formatter().Templates(), nil
}

func newTemplatesListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List builtin and user templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.templateStore()
			if err != nil {
				return err
			}
			listed := store.List()
			if jsonOutput {
				return writeJSON(cmd, listed)
			}

			rows := make([][]string, 0, len(listed))
			for _, name := range store.Names() {
				rows = append(rows, []string{name, listed[name]})
			}
			out := cmd.OutOrStdout()
			if isTerminal(out) {
				headers := []string{"Template", "Source"}
				fmt.Fprintln(out, renderTable(headers, rows, nil))
			} else {
				renderPlain(out, rows)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newTemplatesExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name>",
		Short: "Copy a builtin template into the user directory for editing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.templateStore()
			if err != nil {
				return err
			}
			path, err := store.ExportBuiltin(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], path)
			return nil
		},
	}
}

func newTemplatesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a user template override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.templateStore()
			if err != nil {
				return err
			}
			removed, err := store.Delete(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintf(out, "Removed template %s\n", args[0])
			} else {
				fmt.Fprintf(out, "No user template named %s\n", args[0])
			}
			return nil
		},
	}
}
