package usecase

import (
	"context"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
)

// ContractAccess reads the storage and factory contracts
type ContractAccess interface {
	// GetStorageRecord reads the record kept in the storage contract for a domain
	GetStorageRecord(ctx context.Context, domainName string) (*domain.StorageRecord, error)
	// GetFactoryInfo reads the aggregate fee/config state of a factory on chainID
	GetFactoryInfo(ctx context.Context, chainID uint64, factory string) (*domain.FactoryInfo, error)
}

// DomainProvider determines the domain name settings are stored under
type DomainProvider interface {
	CurrentDomain() (string, error)
}

// TokenListFilter validates the token lists stored for a chain
type TokenListFilter interface {
	Filter(chainID uint64, lists map[string]domain.TokenList) map[string]domain.TokenList
}

// KeyValueStore persists small client-side values such as the cached favicon
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Reloader forces every attached client to reload its whole view
type Reloader interface {
	Reload(ctx context.Context, reason string)
}

// SettingsResolver produces domain settings snapshots
type SettingsResolver interface {
	Run(ctx context.Context, params ResolveDomainSettingsParams) (*domain.DomainSettings, error)
}

// TokenListSource fetches a token list by URL, ipfs:// URI or bare CID
type TokenListSource interface {
	FetchTokenList(ctx context.Context, ref string) (*domain.TokenList, error)
}

// NetworkSelector picks a network interactively
type NetworkSelector interface {
	SelectNetwork(ctx context.Context, networks []config.Network, prompt string) (*config.Network, error)
}

// NetworkChecker verifies RPC endpoints and deployed code
type NetworkChecker interface {
	CheckNetwork(ctx context.Context, network config.Network) error
	CheckContractExists(ctx context.Context, rpcURL, address string) (exists bool, reason string, err error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
