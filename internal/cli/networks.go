package cli

import (
	"github.com/definance/dexgate/internal/cli/render"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/spf13/cobra"
)

// NewNetworksCmd creates the networks command
func NewNetworksCmd() *cobra.Command {
	var (
		checkContracts bool
		checkRPC       bool
	)

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List supported networks",
		Long: `List the supported-network table built from the defaults and the [networks]
sections of dexgate.toml.

With --check the domain settings are resolved and every network is marked as
configured (has contracts) and usable (factory and router are valid addresses).
With --rpc every endpoint is dialled to verify its chain id and factory code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			params := usecase.ListNetworksParams{
				CheckContracts: checkContracts || checkRPC,
				CheckRPC:       checkRPC,
			}
			if params.CheckContracts {
				app.Progress.OnProgress(ctx, usecase.ProgressEvent{
					Stage:   "checking",
					Message: "Checking networks",
					Spinner: true,
				})
			}
			result, err := app.ListNetworks.Run(ctx, params)
			stopProgress(ctx, app)
			if err != nil {
				return err
			}

			return render.NewNetworksRenderer(cmd.OutOrStdout(), outputFormat(cmd)).Render(result)
		},
	}

	cmd.Flags().BoolVar(&checkContracts, "check", false, "Resolve domain settings and report configured contracts")
	cmd.Flags().BoolVar(&checkRPC, "rpc", false, "Dial every RPC endpoint and verify chain id and factory code (implies --check)")

	return cmd
}
