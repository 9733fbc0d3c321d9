package cli

import (
	"fmt"

	"github.com/definance/dexgate/internal/config"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dexgate",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dexgate version %s (commit %s, built %s)\n", config.Version, config.Commit, config.Date)
		},
	}
}
