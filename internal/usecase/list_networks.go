package usecase

import (
	"context"
	"errors"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
)

// ListNetworksParams contains parameters for listing networks
type ListNetworksParams struct {
	// CheckContracts resolves the domain settings to report which networks are usable
	CheckContracts bool
	// CheckRPC dials every network and verifies its chain id and the factory code
	CheckRPC bool
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
	// SettingsError is set when CheckContracts was requested but settings could not be resolved
	SettingsError error
}

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name        string
	ChainID     uint64
	ExplorerURL string
	Factory     string
	Router      string
	Configured  bool
	Usable      bool
	Error       error
}

// ListNetworks is a use case for listing the supported networks
type ListNetworks struct {
	cfg      *config.RuntimeConfig
	resolver SettingsResolver
	checker  NetworkChecker
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, resolver SettingsResolver, checker NetworkChecker) *ListNetworks {
	return &ListNetworks{
		cfg:      cfg,
		resolver: resolver,
		checker:  checker,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context, params ListNetworksParams) (*ListNetworksResult, error) {
	result := &ListNetworksResult{}

	var settings *domain.DomainSettings
	if params.CheckContracts {
		// The contracts table is chain independent, so no chain is selected here
		resolved, err := uc.resolver.Run(ctx, ResolveDomainSettingsParams{})
		if err != nil {
			result.SettingsError = err
		} else {
			settings = resolved
		}
	}

	result.Networks = make([]NetworkStatus, 0, len(uc.cfg.Networks))
	for _, network := range uc.cfg.Networks {
		status := NetworkStatus{
			Name:        network.Name,
			ChainID:     network.ChainID,
			ExplorerURL: network.ExplorerURL,
		}

		if contracts, ok := settings.ContractsFor(network.ChainID); ok {
			status.Configured = true
			status.Factory = contracts.Factory
			status.Router = contracts.Router
			status.Usable = settings.IsUsableChain(network.ChainID)
		}

		if params.CheckRPC && uc.checker != nil {
			status.Error = uc.checkNetwork(ctx, network, status)
		}

		result.Networks = append(result.Networks, status)
	}

	return result, nil
}

func (uc *ListNetworks) checkNetwork(ctx context.Context, network config.Network, status NetworkStatus) error {
	if err := uc.checker.CheckNetwork(ctx, network); err != nil {
		return err
	}
	if !status.Usable {
		return nil
	}

	exists, reason, err := uc.checker.CheckContractExists(ctx, network.RPCURL, status.Factory)
	if err != nil {
		return err
	}
	if !exists {
		return errors.New("factory: " + reason)
	}
	return nil
}
