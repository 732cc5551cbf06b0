package cli

import (
	"github.com/spf13/cobra"

	"github.com/qudata/gatekeeper/internal/ui"
)

// NewRootCmd builds the command tree. The root command runs the interactive
// login and, once access is granted, the main menu.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gatekeeper",
		Short: "Device-bound access control for terminal tools",
		Long: `gatekeeper fingerprints this device for a codename, checks the
fingerprint against a remotely published allow-list, and opens the main
menu only when the fingerprint is approved.

Denied fingerprints are printed so they can be approved out of band.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console := ui.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), app.Config.NoColor)
			return runSession(cmd.Context(), console, app)
		},
	}

	root.AddCommand(newTokenCmd(app))
	root.AddCommand(newServeCmd(app))
	root.AddCommand(newVersionCmd())
	return root
}
