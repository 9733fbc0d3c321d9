package config

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ConfigPath string
	DataDir    string

	// Domain is the storage lookup key. Empty means "use the machine host name".
	Domain string

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool   // Output in JSON format
	LogFormat      string // "text" or "json"
	LogLevel       string
	Timeout        time.Duration

	// Resolved configurations
	Storage  StorageConfig
	Networks []Network // static supported-network table, sorted by chain id
	Cache    CacheConfig
	Gateway  GatewayConfig
	Server   ServerConfig
}

// StorageConfig locates the storage contract holding per-domain settings
type StorageConfig struct {
	ChainID uint64 `json:"chainId"`
	RPCURL  string `json:"rpcUrl"`
	Address string `json:"address"`
}

// Network represents network configuration
type Network struct {
	ChainID      uint64 `json:"chainId"`
	Name         string `json:"name"`
	RPCURL       string `json:"rpcUrl"`
	ExplorerURL  string `json:"explorerUrl,omitempty"`
	WrappedToken string `json:"wrappedToken,omitempty"`
}

// CacheConfig controls the per-chain snapshot cache
type CacheConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

// GatewayConfig controls remote token list fetching
type GatewayConfig struct {
	IPFSURL        string
	RequestsPerMin int
	Timeout        time.Duration
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Listen         string
	MetricsEnabled bool
	AllowedOrigins []string
}

// SupportedChainIDs returns the chain ids of the network table
func (c *RuntimeConfig) SupportedChainIDs() []uint64 {
	ids := lo.Map(c.Networks, func(n Network, _ int) uint64 { return n.ChainID })
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NetworkByChainID looks up a network by chain id
func (c *RuntimeConfig) NetworkByChainID(chainID uint64) (Network, bool) {
	return lo.Find(c.Networks, func(n Network) bool { return n.ChainID == chainID })
}

// NetworkByName looks up a network by name, case-insensitively
func (c *RuntimeConfig) NetworkByName(name string) (Network, bool) {
	return lo.Find(c.Networks, func(n Network) bool { return strings.EqualFold(n.Name, name) })
}
