package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// CheckerAdapter implements the NetworkChecker interface using ethclient
type CheckerAdapter struct {
	timeout time.Duration
}

// NewCheckerAdapter creates a new network checker adapter
func NewCheckerAdapter(cfg *config.RuntimeConfig) *CheckerAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &CheckerAdapter{timeout: timeout}
}

// CheckNetwork dials the network RPC and verifies it serves the configured chain
func (c *CheckerAdapter) CheckNetwork(ctx context.Context, network config.Network) error {
	if network.RPCURL == "" {
		return fmt.Errorf("no RPC URL configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	if networkChainID.Uint64() != network.ChainID {
		return fmt.Errorf("chain ID mismatch: expected %d, got %d", network.ChainID, networkChainID.Uint64())
	}
	return nil
}

// CheckContractExists checks if a contract exists at the given address
func (c *CheckerAdapter) CheckContractExists(ctx context.Context, rpcURL, address string) (exists bool, reason string, err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return false, "", fmt.Errorf("failed to connect to RPC: %w", err)
	}
	defer client.Close()

	code, err := client.CodeAt(ctx, common.HexToAddress(address), nil)
	if err != nil {
		return false, fmt.Sprintf("failed to check code: %v", err), nil
	}

	// If no code at address, contract doesn't exist
	if len(code) == 0 {
		return false, "no code at address", nil
	}

	return true, "", nil
}

// Ensure the adapter implements the interface
var _ usecase.NetworkChecker = (*CheckerAdapter)(nil)
