package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qudata/gatekeeper/internal/config"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gatekeeper %s (built %s)\n", config.Version, config.BuildTime)
		},
	}
}
