package app

import (
	"log/slog"

	"github.com/definance/dexgate/internal/adapters/reload"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector    usecase.NetworkSelector
	Progress    usecase.ProgressSink
	Broadcaster *reload.Broadcaster

	// Use cases
	ResolveDomainSettings *usecase.ResolveDomainSettings
	Controller            *usecase.ReadinessController
	FaviconSync           *usecase.FaviconSync
	ListNetworks          *usecase.ListNetworks
	FetchTokenLists       *usecase.FetchTokenLists
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.NetworkSelector,
	progress usecase.ProgressSink,
	broadcaster *reload.Broadcaster,
	resolveDomainSettings *usecase.ResolveDomainSettings,
	controller *usecase.ReadinessController,
	faviconSync *usecase.FaviconSync,
	listNetworks *usecase.ListNetworks,
	fetchTokenLists *usecase.FetchTokenLists,
) (*App, error) {
	return &App{
		Config:                cfg,
		Log:                   log,
		Selector:              selector,
		Progress:              progress,
		Broadcaster:           broadcaster,
		ResolveDomainSettings: resolveDomainSettings,
		Controller:            controller,
		FaviconSync:           faviconSync,
		ListNetworks:          listNetworks,
		FetchTokenLists:       fetchTokenLists,
	}, nil
}
