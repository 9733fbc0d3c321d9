package blockchain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/bindings"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Dialer opens a read-only contract caller for an RPC endpoint
type Dialer func(ctx context.Context, rpcURL string) (ethereum.ContractCaller, error)

// DialEthclient dials rpcURL with go-ethereum's ethclient
func DialEthclient(ctx context.Context, rpcURL string) (ethereum.ContractCaller, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	return client, nil
}

// ContractAccessAdapter implements ContractAccess with eth_call against the storage
// network and the RPC of each supported network.
type ContractAccessAdapter struct {
	cfg     *config.RuntimeConfig
	dial    Dialer
	storage *bindings.Storage
	factory *bindings.Factory
	log     *slog.Logger

	mu      sync.Mutex
	callers map[string]ethereum.ContractCaller
}

// NewContractAccessAdapter creates a new contract access adapter
func NewContractAccessAdapter(cfg *config.RuntimeConfig, log *slog.Logger) *ContractAccessAdapter {
	return NewContractAccessAdapterWithDialer(cfg, DialEthclient, log)
}

// NewContractAccessAdapterWithDialer creates a contract access adapter that connects through dial
func NewContractAccessAdapterWithDialer(cfg *config.RuntimeConfig, dial Dialer, log *slog.Logger) *ContractAccessAdapter {
	return &ContractAccessAdapter{
		cfg:     cfg,
		dial:    dial,
		storage: bindings.NewStorage(),
		factory: bindings.NewFactory(),
		log:     log.With("component", "ContractAccess"),
		callers: make(map[string]ethereum.ContractCaller),
	}
}

// GetStorageRecord reads the record kept for domainName in the storage contract
func (a *ContractAccessAdapter) GetStorageRecord(ctx context.Context, domainName string) (*domain.StorageRecord, error) {
	storage := a.cfg.Storage
	if !domain.IsValidAddress(storage.Address) {
		return nil, fmt.Errorf("storage contract %q: %w", storage.Address, domain.ErrInvalidAddress)
	}
	if storage.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for storage network %d", storage.ChainID)
	}

	data, err := a.storage.TryPackGetData(domainName)
	if err != nil {
		return nil, fmt.Errorf("failed to pack getData: %w", err)
	}

	out, err := a.call(ctx, storage.RPCURL, storage.Address, data)
	if err != nil {
		return nil, fmt.Errorf("getData(%s): %w", domainName, err)
	}

	record, err := a.storage.UnpackGetData(out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack getData: %w", err)
	}
	a.log.Debug("Read storage record", "domain", domainName, "record", record.String())

	return &domain.StorageRecord{
		Info:  record.Info,
		Owner: record.Owner.Hex(),
	}, nil
}

// GetFactoryInfo reads the aggregate factory state on chainID
func (a *ContractAccessAdapter) GetFactoryInfo(ctx context.Context, chainID uint64, factory string) (*domain.FactoryInfo, error) {
	if !domain.IsValidAddress(factory) {
		return nil, fmt.Errorf("factory %q: %w", factory, domain.ErrInvalidAddress)
	}
	network, ok := a.cfg.NetworkByChainID(chainID)
	if !ok {
		return nil, fmt.Errorf("chain %d: %w", chainID, domain.ErrUnsupportedNetwork)
	}
	if network.RPCURL == "" {
		return nil, fmt.Errorf("no RPC URL configured for network %s", network.Name)
	}

	data, err := a.factory.TryPackAllInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to pack allInfo: %w", err)
	}

	out, err := a.call(ctx, network.RPCURL, factory, data)
	if err != nil {
		return nil, fmt.Errorf("allInfo on %s: %w", network.Name, err)
	}

	info, err := a.factory.UnpackAllInfo(out)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack allInfo: %w", err)
	}
	a.log.Debug("Read factory info", "chainId", chainID, "info", info.String())

	return &domain.FactoryInfo{
		FeeTo:                   info.FeeTo.Hex(),
		ProtocolFee:             uint64(info.ProtocolFee),
		TotalFee:                uint64(info.TotalFee),
		AllFeeToProtocol:        info.AllFeeToProtocol,
		PossibleProtocolPercent: info.PossibleProtocolPercent(),
		TotalSwaps:              info.TotalSwaps,
		InitCodePairHash:        info.InitCodePairHash(),
	}, nil
}

func (a *ContractAccessAdapter) call(ctx context.Context, rpcURL, to string, data []byte) ([]byte, error) {
	caller, err := a.caller(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	addr := common.HexToAddress(to)
	out, err := caller.CallContract(ctx, ethereum.CallMsg{To: &addr, Data: data}, nil)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no contract code at %s", addr.Hex())
	}
	return out, nil
}

// caller returns a cached caller for rpcURL, dialing on first use
func (a *ContractAccessAdapter) caller(ctx context.Context, rpcURL string) (ethereum.ContractCaller, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.callers[rpcURL]; ok {
		return c, nil
	}
	c, err := a.dial(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	a.callers[rpcURL] = c
	return c, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractAccess = (*ContractAccessAdapter)(nil)
