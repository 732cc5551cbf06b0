package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qudata/gatekeeper/internal/server"
)

func newServeCmd(app *App) *cobra.Command {
	opts := server.Options{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish an allow-list file over HTTP",
		Long: `Serve a newline-delimited token file for gatekeeper clients. The file is
re-read on every request, so appending a token approves it immediately.

Point clients at it with GATEKEEPER_ALLOWLIST_URL=http://<host><addr><path>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "serving %s on %s%s\n", opts.File, opts.Addr, opts.ListPath)
			return server.NewServer(opts, app.Logger).Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "Path to the allow-list file (required)")
	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "Listen address")
	cmd.Flags().StringVar(&opts.ListPath, "path", server.DefaultListPath, "URL path of the allow-list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
