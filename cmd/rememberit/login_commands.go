package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var passwordFlag string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Authenticate and store the sync key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			password := passwordFlag
			if password == "" {
				password, err = readPassword(cmd)
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(password) == "" {
				return fmt.Errorf("password is required")
			}

			if err := client.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&passwordFlag, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored sync key",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			if err := client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// readPassword prompts on a terminal without echo, or reads one line from
// stdin when input is piped.
func readPassword(cmd *cobra.Command) (string, error) {
	stdin, isFile := cmd.InOrStdin().(*os.File)
	if isFile && term.IsTerminal(int(stdin.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		raw, err := term.ReadPassword(int(stdin.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
