package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/qudata/gatekeeper/internal/clierror"
	"github.com/qudata/gatekeeper/internal/ui"
)

type tokenOutput struct {
	Username string `json:"username" yaml:"username"`
	Token    string `json:"token" yaml:"token"`
	Scheme   string `json:"scheme" yaml:"scheme"`
}

func newTokenCmd(app *App) *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "token [codename]",
		Short: "Print this device's token for a codename",
		Long: `Print the fingerprint token the login would compute for a codename on
this device, without contacting the allow-list. Send the token to an
operator to get it approved.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 1 {
				raw = args[0]
			} else {
				console := ui.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), app.Config.NoColor)
				line, err := console.Prompt("Enter your codename: ")
				if err != nil && !errors.Is(err, io.EOF) {
					return clierror.InternalError(err)
				}
				raw = line
			}

			username := normalizeUsername(raw)
			token, err := app.Gatekeeper.Token(cmd.Context(), username)
			if err != nil {
				return clierror.From(err)
			}

			return formatOutput(cmd, outputFormat, tokenOutput{
				Username: username,
				Token:    token.String(),
				Scheme:   app.Config.Scheme,
			})
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	return cmd
}

func formatOutput(cmd *cobra.Command, format string, out tokenOutput) error {
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to format YAML: %w", err)
		}
		fmt.Fprint(w, string(data))
	case "text", "":
		fmt.Fprintln(w, out.Token)
	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", format)
	}
	return nil
}
