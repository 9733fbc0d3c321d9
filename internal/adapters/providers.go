package adapters

import (
	"github.com/definance/dexgate/internal/adapters/blockchain"
	"github.com/definance/dexgate/internal/adapters/environment"
	"github.com/definance/dexgate/internal/adapters/fs"
	"github.com/definance/dexgate/internal/adapters/gateway"
	"github.com/definance/dexgate/internal/adapters/interactive"
	"github.com/definance/dexgate/internal/adapters/progress"
	"github.com/definance/dexgate/internal/adapters/reload"
	"github.com/definance/dexgate/internal/adapters/tokenlist"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/google/wire"
)

// BlockchainSet provides the on-chain readers
var BlockchainSet = wire.NewSet(
	blockchain.NewContractAccessAdapter,
	wire.Bind(new(usecase.ContractAccess), new(*blockchain.ContractAccessAdapter)),

	blockchain.NewCheckerAdapter,
	wire.Bind(new(usecase.NetworkChecker), new(*blockchain.CheckerAdapter)),
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewKeyValueStoreAdapter,
	wire.Bind(new(usecase.KeyValueStore), new(*fs.KeyValueStoreAdapter)),
)

// EnvironmentSet provides the domain lookup
var EnvironmentSet = wire.NewSet(
	environment.NewDomainProviderAdapter,
	wire.Bind(new(usecase.DomainProvider), new(*environment.DomainProviderAdapter)),
)

// TokenListSet provides token list fetching and validation
var TokenListSet = wire.NewSet(
	tokenlist.NewFilter,
	wire.Bind(new(usecase.TokenListFilter), new(*tokenlist.Filter)),

	gateway.NewTokenListGateway,
	wire.Bind(new(usecase.TokenListSource), new(*gateway.TokenListGateway)),
)

// ReloadSet provides the reload fan-out shared by the favicon sync and the event stream
var ReloadSet = wire.NewSet(
	reload.NewBroadcaster,
	wire.Bind(new(usecase.Reloader), new(*reload.Broadcaster)),
)

// InteractiveSet provides interactive components
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.NetworkSelector), new(*interactive.SelectorAdapter)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	FSSet,
	EnvironmentSet,
	TokenListSet,
	ReloadSet,
	InteractiveSet,
	ProgressSet,
)
