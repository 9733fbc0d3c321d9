package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/observability/metrics"
	"github.com/definance/dexgate/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve settings and readiness over HTTP",
		Long: `Start the HTTP gateway. Clients report wallet changes with PUT /api/wallet and
receive settings, readiness and reload events on the /api/events websocket.

The settings of the current domain are resolved at startup for a disconnected
wallet, so the first client does not wait for a fetch.`,
		Example: `  # Listen on the configured address
  dexgate serve

  # Listen on all interfaces without metrics
  dexgate serve --listen :8645 --metrics=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			metrics.Init(app.Config.Server.MetricsEnabled)

			srv := server.New(app.Config.Server, app.Controller, app.Broadcaster, app.Log)
			app.Controller.UpdateWallet(ctx, domain.WalletSignals{})

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("listen", "", "Address to listen on (default 127.0.0.1:8645)")
	cmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")

	return cmd
}
