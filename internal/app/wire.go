//go:build wireinject
// +build wireinject

package app

import (
	"github.com/definance/dexgate/internal/adapters"
	"github.com/definance/dexgate/internal/config"
	"github.com/definance/dexgate/internal/logging"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewResolveDomainSettings,
		wire.Bind(new(usecase.SettingsResolver), new(*usecase.ResolveDomainSettings)),
		usecase.NewFaviconSync,
		usecase.NewReadinessController,
		usecase.NewListNetworks,
		usecase.NewFetchTokenLists,

		// App
		NewApp,
	)
	return nil, nil
}
