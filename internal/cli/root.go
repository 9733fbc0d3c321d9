package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/definance/dexgate/internal/app"
	"github.com/definance/dexgate/internal/cli/render"
	"github.com/definance/dexgate/internal/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// commands that run without a configured app
var skipInit = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dexgate",
		Short: "Domain-scoped settings gateway for white-label DEX front-ends",
		Long: `dexgate resolves the on-chain settings of a DEX domain from its storage
contract, enriches them with live factory state and derives which surface
(loading, admin panel, main app, greeting or connection prompt) a client
should render.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipInit[cmd.Name()] {
				return nil
			}

			if cmd.Flags().Changed("json") && cmd.Flags().Changed("yaml") {
				return fmt.Errorf("--json and --yaml are mutually exclusive")
			}

			v := config.SetupViper(cmd)

			appInstance, err := app.InitApp(v)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// serve runs until interrupted, every other command is bounded
			if cmd.Name() != "serve" && appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to dexgate.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().StringP("domain", "d", "", "Domain to resolve settings for (default: host name)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("yaml", false, "Output in YAML format")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text or json)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	resolveCmd := NewResolveCmd()
	resolveCmd.GroupID = "main"
	rootCmd.AddCommand(resolveCmd)

	statusCmd := NewStatusCmd()
	statusCmd.GroupID = "main"
	rootCmd.AddCommand(statusCmd)

	serveCmd := NewServeCmd()
	serveCmd.GroupID = "main"
	rootCmd.AddCommand(serveCmd)

	networksCmd := NewNetworksCmd()
	networksCmd.GroupID = "management"
	rootCmd.AddCommand(networksCmd)

	tokenListsCmd := NewTokenListsCmd()
	tokenListsCmd.GroupID = "management"
	rootCmd.AddCommand(tokenListsCmd)

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	a, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return a, nil
}

// outputFormat reads the --json and --yaml flags
func outputFormat(cmd *cobra.Command) render.Format {
	if json, _ := cmd.Flags().GetBool("json"); json {
		return render.FormatJSON
	}
	if yaml, _ := cmd.Flags().GetBool("yaml"); yaml {
		return render.FormatYAML
	}
	return render.FormatText
}

// canPrompt reports whether an interactive picker may be shown
func canPrompt(a *app.App) bool {
	return !a.Config.NonInteractive && !a.Config.JSON && term.IsTerminal(int(os.Stdin.Fd()))
}

// stopProgress ends any running spinner before output is written
func stopProgress(ctx context.Context, a *app.App) {
	a.Progress.OnProgress(ctx, usecase.ProgressEvent{Stage: "done"})
}
