package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rememberit/internal/assets"
)

func newFetchAssetsCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var cookie string

	cmd := &cobra.Command{
		Use:   "fetch-assets <url>",
		Short: "Download a page's static assets using the stored web session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}

			resolved := strings.TrimSpace(cookie)
			if resolved == "" {
				resolved = assets.ResolveCookie(client.Session())
			}

			opts := []assets.Option{assets.WithCookie(resolved)}
			if dir := strings.TrimSpace(outDir); dir != "" {
				opts = append(opts, assets.WithOutputDir(dir))
			} else if configured := ctx.config.Assets.OutputDir; configured != "" {
				opts = append(opts, assets.WithOutputDir(configured))
			}

			result, err := assets.New(opts...).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, asset := range result.Assets {
				fmt.Fprintf(out, "%s (%d bytes)\n", asset.Path, asset.Size)
			}
			fmt.Fprintf(out, "Saved %d assets; response headers in %s\n", len(result.Assets), result.HeadersFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory for downloaded assets")
	cmd.Flags().StringVar(&cookie, "cookie", "", "Cookie header (defaults to COOKIE_HEADER or the stored session)")
	return cmd
}
