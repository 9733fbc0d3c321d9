package cli

import (
	"context"
	"fmt"

	"github.com/definance/dexgate/internal/app"
	"github.com/definance/dexgate/internal/cli/render"
	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	var (
		chainID    uint64
		network    string
		account    string
		connected  bool
		management bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which surface a wallet would be shown",
		Long: `Feed wallet signals into the readiness controller, wait for the settings of the
wallet's chain to resolve and print the derived render state.

Passing --account implies a connected wallet. Chains outside the supported
network table are accepted so the unsupported-network prompt can be inspected.
The cached favicon in the data directory is left untouched.`,
		Example: `  # Nobody connected yet
  dexgate status

  # Admin wallet on BSC
  dexgate status --network bsc --account 0x1111111111111111111111111111111111111111

  # Admin panel requested explicitly
  dexgate status --chain-id 56 --account 0x1111111111111111111111111111111111111111 --management`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if network != "" {
				if chainID != 0 {
					return fmt.Errorf("--network and --chain-id are mutually exclusive")
				}
				n, ok := app.Config.NetworkByName(network)
				if !ok {
					return fmt.Errorf("%w: %s", domain.ErrUnsupportedNetwork, network)
				}
				chainID = n.ChainID
			}
			if account != "" && !domain.IsValidAddress(account) {
				return fmt.Errorf("%w: %s", domain.ErrInvalidAddress, account)
			}

			wallet := domain.WalletSignals{
				Connected: connected || account != "",
				ChainID:   chainID,
				Account:   account,
			}

			app.Progress.OnProgress(ctx, usecase.ProgressEvent{
				Stage:   "resolving",
				Message: "Resolving domain settings",
				Spinner: true,
			})
			view := inspectReadiness(ctx, app, wallet, management)
			stopProgress(ctx, app)

			return render.NewReadinessRenderer(cmd.OutOrStdout(), outputFormat(cmd)).Render(view)
		},
	}

	cmd.Flags().Uint64Var(&chainID, "chain-id", 0, "Chain the wallet is on")
	cmd.Flags().StringVarP(&network, "network", "n", "", "Network name the wallet is on")
	cmd.Flags().StringVar(&account, "account", "", "Connected account address")
	cmd.Flags().BoolVar(&connected, "connected", false, "Wallet is connected without an account")
	cmd.Flags().BoolVar(&management, "management", false, "Request the admin panel")

	return cmd
}

// inspectReadiness derives the render state of wallet on a controller without favicon
// sync, so the favicon cache shared with serve is never written.
func inspectReadiness(ctx context.Context, a *app.App, wallet domain.WalletSignals, management bool) *render.ReadinessView {
	controller := usecase.NewReadinessController(a.ResolveDomainSettings, nil, a.Config, a.Log)
	controller.UpdateWallet(ctx, wallet)
	controller.Wait()
	if management {
		controller.ToggleAdminManagement(true)
	}

	snap := controller.Snapshot()
	return &render.ReadinessView{
		Wallet:    snap.Wallet,
		Readiness: snap.Readiness,
	}
}
