package cli

import (
	"context"
	"fmt"

	"github.com/definance/dexgate/internal/app"
	"github.com/definance/dexgate/internal/cli/render"
	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd() *cobra.Command {
	var (
		chainID uint64
		network string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the settings of the current domain",
		Long: `Read the settings record of the current domain from the storage contract and
print the resolved snapshot.

When a chain is selected the contracts of that chain become the active factory
and router, the token lists of that chain are flattened and the factory is
queried for its fee configuration and swap counter.`,
		Example: `  # Resolve without selecting a chain
  dexgate resolve --non-interactive

  # Resolve for BSC
  dexgate resolve --network bsc

  # Resolve another domain as JSON
  dexgate resolve --domain swap.example.com --chain-id 56 --json`,
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

			view := &render.SettingsView{}
			params := usecase.ResolveDomainSettingsParams{}
			if selected != nil {
				params.ChainID = selected.ChainID
				view.ChainID = selected.ChainID
				view.Network = selected.Name
			}

			app.Progress.OnProgress(ctx, usecase.ProgressEvent{
				Stage:   "resolving",
				Message: "Resolving domain settings",
				Spinner: true,
			})
			settings, err := app.ResolveDomainSettings.Run(ctx, params)
			stopProgress(ctx, app)
			if err != nil {
				return err
			}

			view.Settings = settings
			return render.NewSettingsRenderer(cmd.OutOrStdout(), outputFormat(cmd)).Render(view)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Chain to resolve contracts and token lists for")
	cmd.Flags().StringVarP(&network, "network", "n", "", "Network name to resolve for (e.g. bsc, polygon)")

	return cmd
}

// selectNetwork picks the network from --network or --chain-id, or asks for one when
// neither is given and prompting is possible. A nil network means no chain is selected.
func selectNetwork(ctx context.Context, a *app.App, chainID uint64, name string) (*config.Network, error) {
	if name != "" && chainID != 0 {
		return nil, fmt.Errorf("--network and --chain-id are mutually exclusive")
	}

	if name != "" {
		network, ok := a.Config.NetworkByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedNetwork, name)
		}
		return &network, nil
	}

	if chainID != 0 {
		network, ok := a.Config.NetworkByChainID(chainID)
		if !ok {
			return nil, fmt.Errorf("%w: chain %d", domain.ErrUnsupportedNetwork, chainID)
		}
		return &network, nil
	}

	if !canPrompt(a) {
		return nil, nil
	}
	return a.Selector.SelectNetwork(ctx, a.Config.Networks, "Select network")
}
