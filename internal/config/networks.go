package config

import (
	"fmt"
	"sort"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultStorageChainID is the network holding the settings storage contract
const DefaultStorageChainID uint64 = 56

// DefaultNetworks returns the built-in supported-network table
func DefaultNetworks() []config.Network {
	return []config.Network{
		{
			ChainID:      1,
			Name:         "ethereum",
			RPCURL:       "https://ethereum-rpc.publicnode.com",
			ExplorerURL:  "https://etherscan.io",
			WrappedToken: "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2",
		},
		{
			ChainID:      56,
			Name:         "bsc",
			RPCURL:       "https://bsc-dataseed.binance.org",
			ExplorerURL:  "https://bscscan.com",
			WrappedToken: "0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c",
		},
		{
			ChainID:      97,
			Name:         "bsc-testnet",
			RPCURL:       "https://data-seed-prebsc-1-s1.binance.org:8545",
			ExplorerURL:  "https://testnet.bscscan.com",
			WrappedToken: "0xae13d989daC2f0dEbFf460aC112a837C89BAa7cd",
		},
		{
			ChainID:      137,
			Name:         "polygon",
			RPCURL:       "https://polygon-rpc.com",
			ExplorerURL:  "https://polygonscan.com",
			WrappedToken: "0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270",
		},
		{
			ChainID:      80001,
			Name:         "mumbai",
			RPCURL:       "https://rpc-mumbai.maticvigil.com",
			ExplorerURL:  "https://mumbai.polygonscan.com",
			WrappedToken: "0x9c3C9283D3e44854697Cd22D3Faa240Cfb032889",
		},
	}
}

// mergeNetworks overlays the [networks.*] sections onto the built-in table and returns
// the result sorted by chain id, plus one warning per RPC URL referencing an unset variable.
func mergeNetworks(defaults []config.Network, overrides map[string]NetworkTOML) ([]config.Network, []string, error) {
	byChain := lo.SliceToMap(defaults, func(n config.Network) (uint64, config.Network) {
		return n.ChainID, n
	})

	names := lo.Keys(overrides)
	sort.Strings(names)

	var warnings []string
	for _, name := range names {
		entry := overrides[name]
		chainID := entry.ChainID
		if chainID == 0 {
			builtin, ok := lo.Find(defaults, func(n config.Network) bool { return n.Name == name })
			if !ok {
				return nil, nil, fmt.Errorf("network %q: chain_id is required", name)
			}
			chainID = builtin.ChainID
		}

		if entry.Disabled {
			delete(byChain, chainID)
			continue
		}

		network := byChain[chainID]
		network.ChainID = chainID
		network.Name = name
		if entry.RPCURL != "" {
			network.RPCURL = entry.RPCURL
		}
		if entry.ExplorerURL != "" {
			network.ExplorerURL = entry.ExplorerURL
		}
		if entry.WrappedToken != "" {
			network.WrappedToken = entry.WrappedToken
		}
		byChain[chainID] = network
	}

	networks := lo.Values(byChain)
	sort.Slice(networks, func(i, j int) bool { return networks[i].ChainID < networks[j].ChainID })

	for i := range networks {
		url, missing := resolveRPCURL(networks[i].Name, networks[i].RPCURL)
		if missing != "" {
			warnings = append(warnings, fmt.Sprintf("RPC URL for %s references unset variable %s", networks[i].Name, missing))
		}
		networks[i].RPCURL = url
	}

	return networks, warnings, nil
}
