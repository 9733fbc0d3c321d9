package cli

import (
	"fmt"

	"github.com/definance/dexgate/internal/cli/render"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewTokenListsCmd creates the tokenlists command
func NewTokenListsCmd() *cobra.Command {
	var (
		chainID uint64
		network string
		sources []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:     "tokenlists",
		Aliases: []string{"tl"},
		Short:   "Fetch the remote token lists of the current domain",
		Long: `Download the token lists referenced by the domain's addressesOfTokenLists,
by URL, ipfs:// URI or bare IPFS hash, and filter them for a chain.

Each source is reported separately; a failing source does not stop the others.`,
		Example: `  # Lists referenced by the domain, filtered for BSC
  dexgate tokenlists --network bsc

  # Inspect a list directly
  dexgate tokenlists --chain-id 56 --source https://tokens.pancakeswap.finance/pancakeswap-extended.json -v`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			selected, err := selectNetwork(ctx, app, chainID, network)
			if err != nil {
				return err
			}
			if selected == nil {
				return fmt.Errorf("a chain is required: use --network or --chain-id")
			}

			result, err := app.FetchTokenLists.Run(ctx, usecase.FetchTokenListsParams{
				ChainID: selected.ChainID,
				Sources: sources,
			})
			stopProgress(ctx, app)
			if err != nil {
				return err
			}

			return render.NewTokenListsRenderer(cmd.OutOrStdout(), outputFormat(cmd), verbose).Render(result)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Chain to filter tokens for")
	cmd.Flags().StringVarP(&network, "network", "n", "", "Network name to filter tokens for")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "Token list URL or IPFS hash (repeatable, overrides the domain settings)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List every token")

	return cmd
}
