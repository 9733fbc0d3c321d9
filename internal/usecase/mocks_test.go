package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const (
	factoryAddr = "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	routerAddr  = "0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"
	ownerAddr   = "0x1111111111111111111111111111111111111111"
	feeToAddr   = "0x2222222222222222222222222222222222222222"
	pairHash    = "0x3333333333333333333333333333333333333333333333333333333333333333"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// MockContractAccess is a mock implementation of ContractAccess
type MockContractAccess struct {
	mock.Mock
}

func (m *MockContractAccess) GetStorageRecord(ctx context.Context, domainName string) (*domain.StorageRecord, error) {
	args := m.Called(ctx, domainName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StorageRecord), args.Error(1)
}

func (m *MockContractAccess) GetFactoryInfo(ctx context.Context, chainID uint64, factory string) (*domain.FactoryInfo, error) {
	args := m.Called(ctx, chainID, factory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FactoryInfo), args.Error(1)
}

// MockDomainProvider is a mock implementation of DomainProvider
type MockDomainProvider struct {
	mock.Mock
}

func (m *MockDomainProvider) CurrentDomain() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MockSettingsResolver is a mock implementation of SettingsResolver
type MockSettingsResolver struct {
	mock.Mock
}

func (m *MockSettingsResolver) Run(ctx context.Context, params usecase.ResolveDomainSettingsParams) (*domain.DomainSettings, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DomainSettings), args.Error(1)
}

// MockNetworkChecker is a mock implementation of NetworkChecker
type MockNetworkChecker struct {
	mock.Mock
}

func (m *MockNetworkChecker) CheckNetwork(ctx context.Context, network config.Network) error {
	args := m.Called(ctx, network)
	return args.Error(0)
}

func (m *MockNetworkChecker) CheckContractExists(ctx context.Context, rpcURL, address string) (bool, string, error) {
	args := m.Called(ctx, rpcURL, address)
	return args.Bool(0), args.String(1), args.Error(2)
}

// MockTokenListSource is a mock implementation of TokenListSource
type MockTokenListSource struct {
	mock.Mock
}

func (m *MockTokenListSource) FetchTokenList(ctx context.Context, ref string) (*domain.TokenList, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenList), args.Error(1)
}

// chainFilter keeps only the tokens of the requested chain and drops empty lists
type chainFilter struct{}

func (chainFilter) Filter(chainID uint64, lists map[string]domain.TokenList) map[string]domain.TokenList {
	out := make(map[string]domain.TokenList, len(lists))
	for id, list := range lists {
		tokens := make([]domain.Token, 0, len(list.Tokens))
		for _, token := range list.Tokens {
			if token.ChainID == chainID {
				tokens = append(tokens, token)
			}
		}
		if len(tokens) == 0 {
			continue
		}
		list.Tokens = tokens
		out[id] = list
	}
	return out
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

// memoryStore is an in-memory KeyValueStore
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// countingReloader counts reload requests
type countingReloader struct {
	mu      sync.Mutex
	reasons []string
}

func (r *countingReloader) Reload(_ context.Context, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *countingReloader) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reasons)
}

// gatedResolver returns canned snapshots per chain. A fetch for a gated chain blocks
// until the gate is released.
type gatedResolver struct {
	mu      sync.Mutex
	results map[uint64]*domain.DomainSettings
	errs    map[uint64]error
	gates   map[uint64]chan struct{}
	calls   map[uint64]int
}

func newGatedResolver() *gatedResolver {
	return &gatedResolver{
		results: map[uint64]*domain.DomainSettings{},
		errs:    map[uint64]error{},
		gates:   map[uint64]chan struct{}{},
		calls:   map[uint64]int{},
	}
}

func (r *gatedResolver) set(chainID uint64, s *domain.DomainSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[chainID] = s
}

func (r *gatedResolver) fail(chainID uint64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[chainID] = err
}

func (r *gatedResolver) gate(chainID uint64) chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{})
	r.gates[chainID] = ch
	return ch
}

func (r *gatedResolver) callCount(chainID uint64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[chainID]
}

func (r *gatedResolver) Run(ctx context.Context, params usecase.ResolveDomainSettingsParams) (*domain.DomainSettings, error) {
	r.mu.Lock()
	r.calls[params.ChainID]++
	gate := r.gates[params.ChainID]
	r.mu.Unlock()

	if gate != nil {
		<-gate
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.errs[params.ChainID]; err != nil {
		return nil, err
	}
	return r.results[params.ChainID], nil
}

// readySettings returns a complete snapshot for chainID
func readySettings(chainID uint64, name string) *domain.DomainSettings {
	s := domain.DefaultSettings()
	s.Admin = ownerAddr
	s.Contracts[chainID] = domain.ChainContracts{Factory: factoryAddr, Router: routerAddr}
	s.Factory = factoryAddr
	s.Router = routerAddr
	s.ProjectName = name
	return &s
}
