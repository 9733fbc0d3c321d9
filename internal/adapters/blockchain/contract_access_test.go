package blockchain

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"testing"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/bindings"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	storageAddr = "0x0000000000000000000000000000000000005707"
	factoryAddr = "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
)

// fakeCaller answers eth_call with canned return data keyed by target address
type fakeCaller struct {
	responses map[common.Address][]byte
	calls     []ethereum.CallMsg
	err       error
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, msg)
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[*msg.To], nil
}

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Storage: config.StorageConfig{ChainID: 97, RPCURL: "http://storage.rpc", Address: storageAddr},
		Networks: []config.Network{
			{ChainID: 56, Name: "bsc", RPCURL: "http://bsc.rpc"},
			{ChainID: 97, Name: "bsc-testnet", RPCURL: "http://storage.rpc"},
		},
	}
}

func newTestAdapter(t *testing.T, caller *fakeCaller) (*ContractAccessAdapter, *[]string) {
	t.Helper()
	var dialed []string
	dial := func(_ context.Context, rpcURL string) (ethereum.ContractCaller, error) {
		dialed = append(dialed, rpcURL)
		return caller, nil
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewContractAccessAdapterWithDialer(testConfig(), dial, log), &dialed
}

func packStorageRecord(t *testing.T, owner common.Address, info string) []byte {
	t.Helper()
	parsed, err := bindings.StorageMetaData.ParseABI()
	require.NoError(t, err)
	out, err := parsed.Methods["getData"].Outputs.Pack(bindings.StorageData{Owner: owner, Info: info})
	require.NoError(t, err)
	return out
}

func packFactoryInfo(t *testing.T) []byte {
	t.Helper()
	parsed, err := bindings.FactoryMetaData.ParseABI()
	require.NoError(t, err)

	var hash [32]byte
	copy(hash[:], bytes.Repeat([]byte{0x33}, 32))
	out, err := parsed.Methods["allInfo"].Outputs.Pack(
		common.HexToAddress("0x2222222222222222222222222222222222222222"),
		uint16(50),
		uint16(30),
		true,
		[]uint16{0, 25, 50, 100},
		big.NewInt(42),
		hash,
	)
	require.NoError(t, err)
	return out
}

func TestGetStorageRecord(t *testing.T) {
	ctx := context.Background()
	owner := common.HexToAddress("0x1111111111111111111111111111111111111111")

	caller := &fakeCaller{responses: map[common.Address][]byte{
		common.HexToAddress(storageAddr): packStorageRecord(t, owner, `{"definance":{}}`),
	}}
	adapter, dialed := newTestAdapter(t, caller)

	record, err := adapter.GetStorageRecord(ctx, "dex.example.com")
	require.NoError(t, err)
	assert.Equal(t, `{"definance":{}}`, record.Info)
	assert.Equal(t, owner.Hex(), record.Owner)

	require.Len(t, caller.calls, 1)
	assert.Equal(t, common.HexToAddress(storageAddr), *caller.calls[0].To)
	assert.Equal(t, []byte{0xae, 0x55, 0xc8, 0x88}, caller.calls[0].Data[:4])

	// The caller is dialed once and reused
	_, err = adapter.GetStorageRecord(ctx, "dex.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://storage.rpc"}, *dialed)
}

func TestGetStorageRecordErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("call failure", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, &fakeCaller{err: errors.New("connection refused")})
		_, err := adapter.GetStorageRecord(ctx, "dex.example.com")
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("no code", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, &fakeCaller{responses: map[common.Address][]byte{}})
		_, err := adapter.GetStorageRecord(ctx, "dex.example.com")
		assert.ErrorContains(t, err, "no contract code")
	})

	t.Run("invalid storage address", func(t *testing.T) {
		adapter, _ := newTestAdapter(t, &fakeCaller{})
		adapter.cfg = &config.RuntimeConfig{Storage: config.StorageConfig{Address: "nope", RPCURL: "http://x"}}
		_, err := adapter.GetStorageRecord(ctx, "dex.example.com")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}

func TestGetFactoryInfo(t *testing.T) {
	ctx := context.Background()

	caller := &fakeCaller{responses: map[common.Address][]byte{
		common.HexToAddress(factoryAddr): packFactoryInfo(t),
	}}
	adapter, dialed := newTestAdapter(t, caller)

	info, err := adapter.GetFactoryInfo(ctx, 56, factoryAddr)
	require.NoError(t, err)

	assert.Equal(t, "0x2222222222222222222222222222222222222222", info.FeeTo)
	assert.Equal(t, uint64(50), info.ProtocolFee)
	assert.Equal(t, uint64(30), info.TotalFee)
	assert.True(t, info.AllFeeToProtocol)
	assert.Equal(t, []uint64{0, 25, 50, 100}, info.PossibleProtocolPercent)
	assert.Equal(t, int64(42), info.TotalSwaps.Int64())
	assert.Equal(t, "0x3333333333333333333333333333333333333333333333333333333333333333", info.InitCodePairHash)

	assert.Equal(t, []string{"http://bsc.rpc"}, *dialed)
	assert.Equal(t, []byte{0xef, 0x7a, 0xdc, 0x00}, caller.calls[0].Data)
}

func TestGetFactoryInfoUnsupportedChain(t *testing.T) {
	adapter, _ := newTestAdapter(t, &fakeCaller{})
	_, err := adapter.GetFactoryInfo(context.Background(), 137, factoryAddr)
	assert.ErrorIs(t, err, domain.ErrUnsupportedNetwork)
}
