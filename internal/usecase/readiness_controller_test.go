package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Timeout: 5 * time.Second,
		Networks: []config.Network{
			{ChainID: 56, Name: "bsc"},
			{ChainID: 97, Name: "bsc-testnet"},
		},
		Cache: config.CacheConfig{TTL: time.Minute},
	}
}

type controllerFixture struct {
	controller *usecase.ReadinessController
	resolver   *gatedResolver
	store      *memoryStore
	reloader   *countingReloader
}

func newControllerFixture() *controllerFixture {
	f := &controllerFixture{
		resolver: newGatedResolver(),
		store:    newMemoryStore(),
		reloader: &countingReloader{},
	}
	favicon := usecase.NewFaviconSync(f.store, f.reloader, testLogger())
	f.controller = usecase.NewReadinessController(f.resolver, favicon, testConfig(), testLogger())
	return f
}

func connected(chainID uint64) domain.WalletSignals {
	return domain.WalletSignals{Connected: true, ChainID: chainID, Account: ownerAddr}
}

func TestReadinessController(t *testing.T) {
	ctx := context.Background()

	t.Run("loading before the first snapshot", func(t *testing.T) {
		f := newControllerFixture()
		gate := f.resolver.gate(56)
		f.resolver.set(56, readySettings(56, "a"))

		f.controller.UpdateWallet(ctx, connected(56))
		assert.Equal(t, domain.StateLoading, f.controller.Readiness().State)
		assert.Equal(t, domain.DefaultSettings(), f.controller.Settings())

		close(gate)
		f.controller.Wait()
		assert.Equal(t, domain.StateMainApp, f.controller.Readiness().State)
	})

	t.Run("concrete main app scenario", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.set(56, readySettings(56, "a"))

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		r := f.controller.Readiness()
		assert.Equal(t, domain.StateMainApp, r.State)
		assert.True(t, r.IsAvailableNetwork)
		assert.True(t, r.IsAdmin)
	})

	t.Run("zero owner without contracts greets", func(t *testing.T) {
		f := newControllerFixture()
		s := domain.DefaultSettings()
		f.resolver.set(56, &s)

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		r := f.controller.Readiness()
		assert.Equal(t, domain.StateGreeting, r.State)
		assert.False(t, r.IsAvailableNetwork)
		assert.True(t, r.IsSetupRequired)
	})

	t.Run("storage failure stays loading", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.fail(56, errors.New("network error"))

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		assert.Equal(t, domain.StateLoading, f.controller.Readiness().State)
		assert.Equal(t, 0, f.reloader.Count())
	})

	t.Run("management wins over unsupported network", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.set(1, readySettings(1, "a"))

		f.controller.UpdateWallet(ctx, connected(1))
		f.controller.Wait()
		assert.Equal(t, domain.StateConnectionPrompt, f.controller.Readiness().State)
		assert.Equal(t, domain.PromptUnsupportedNetwork, f.controller.Readiness().Prompt)

		f.controller.ToggleAdminManagement(true)
		assert.Equal(t, domain.StateAdminPanel, f.controller.Readiness().State)

		f.controller.ToggleAdminManagement(false)
		assert.Equal(t, domain.StateConnectionPrompt, f.controller.Readiness().State)
	})

	t.Run("account change recomputes without fetching", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.set(56, readySettings(56, "a"))

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()
		require.Equal(t, 1, f.resolver.callCount(56))

		f.controller.UpdateWallet(ctx, domain.WalletSignals{ChainID: 56})
		f.controller.Wait()
		assert.Equal(t, domain.StateConnectionPrompt, f.controller.Readiness().State)
		assert.Equal(t, domain.PromptConnectWallet, f.controller.Readiness().Prompt)
		assert.Equal(t, 1, f.resolver.callCount(56))
	})

	t.Run("stale result is discarded", func(t *testing.T) {
		f := newControllerFixture()
		gateA := f.resolver.gate(56)
		f.resolver.set(56, readySettings(56, "chain-a"))
		f.resolver.set(97, readySettings(97, "chain-b"))

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.UpdateWallet(ctx, connected(97))

		assert.Eventually(t, func() bool {
			return f.controller.Settings().ProjectName == "chain-b"
		}, time.Second, 5*time.Millisecond)

		close(gateA)
		f.controller.Wait()

		assert.Equal(t, "chain-b", f.controller.Settings().ProjectName)
		assert.Equal(t, domain.StateMainApp, f.controller.Readiness().State)
	})

	t.Run("cached pair hash short-circuits chain switch", func(t *testing.T) {
		f := newControllerFixture()
		a := readySettings(56, "chain-a")
		a.PairHash = pairHash
		f.resolver.set(56, a)
		f.resolver.set(97, readySettings(97, "chain-b"))

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()
		f.controller.UpdateWallet(ctx, connected(97))
		f.controller.Wait()
		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		assert.Equal(t, 1, f.resolver.callCount(56))
		assert.Equal(t, "chain-a", f.controller.Settings().ProjectName)
		assert.Equal(t, domain.StateMainApp, f.controller.Readiness().State)

		// Chain 97 has no pair hash, so it is fetched again
		f.controller.UpdateWallet(ctx, connected(97))
		f.controller.Wait()
		assert.Equal(t, 2, f.resolver.callCount(97))
	})

	t.Run("refresh bypasses the cache", func(t *testing.T) {
		f := newControllerFixture()
		a := readySettings(56, "before")
		a.PairHash = pairHash
		f.resolver.set(56, a)

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		f.resolver.set(56, readySettings(56, "after"))
		f.controller.Refresh(ctx)
		f.controller.Wait()

		assert.Equal(t, 2, f.resolver.callCount(56))
		assert.Equal(t, "after", f.controller.Settings().ProjectName)
	})

	t.Run("failed refresh keeps the previous snapshot", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.set(56, readySettings(56, "kept"))

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		f.resolver.fail(56, errors.New("timeout"))
		f.controller.Refresh(ctx)
		f.controller.Wait()

		assert.Equal(t, "kept", f.controller.Settings().ProjectName)
		assert.Equal(t, domain.StateMainApp, f.controller.Readiness().State)
	})

	t.Run("favicon reloads once per transition", func(t *testing.T) {
		f := newControllerFixture()
		s := readySettings(56, "a")
		s.Favicon = "https://example.com/a.ico"
		f.resolver.set(56, s)

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()
		assert.Equal(t, 1, f.reloader.Count())

		f.controller.Refresh(ctx)
		f.controller.Wait()
		f.controller.Refresh(ctx)
		f.controller.Wait()
		assert.Equal(t, 1, f.reloader.Count())

		cleared := readySettings(56, "a")
		f.resolver.set(56, cleared)
		f.controller.Refresh(ctx)
		f.controller.Wait()
		assert.Equal(t, 2, f.reloader.Count())

		_, ok, err := f.store.Get(ctx, usecase.FaviconKey)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("late favicon sync of a replaced snapshot is skipped", func(t *testing.T) {
		f := newControllerFixture()
		const xIco, yIco = "https://example.com/x.ico", "https://example.com/y.ico"
		x := readySettings(56, "a")
		x.Favicon = xIco
		f.resolver.set(56, x)

		// Hold the first fetch between its notify and its favicon sync
		reached := make(chan struct{})
		release := make(chan struct{})
		var once sync.Once
		unsubscribe := f.controller.Subscribe(func(u usecase.ReadinessUpdate) {
			if u.Reason != usecase.ReasonSettings || u.Settings.Favicon != xIco {
				return
			}
			once.Do(func() {
				close(reached)
				<-release
			})
		})
		defer unsubscribe()

		f.controller.UpdateWallet(ctx, connected(56))
		<-reached

		y := readySettings(56, "a")
		y.Favicon = yIco
		f.resolver.set(56, y)
		f.controller.Refresh(ctx)

		assert.Eventually(t, func() bool {
			return f.reloader.Count() == 1
		}, time.Second, 5*time.Millisecond)

		close(release)
		f.controller.Wait()

		assert.Equal(t, yIco, f.controller.Settings().Favicon)
		cached, ok, err := f.store.Get(ctx, usecase.FaviconKey)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, yIco, cached)
		assert.Equal(t, 1, f.reloader.Count())

		f.controller.Refresh(ctx)
		f.controller.Wait()
		assert.Equal(t, 1, f.reloader.Count())
	})

	t.Run("cached chain switch syncs its favicon", func(t *testing.T) {
		f := newControllerFixture()
		a := readySettings(56, "chain-a")
		a.PairHash = pairHash
		a.Favicon = "https://example.com/a.ico"
		f.resolver.set(56, a)
		b := readySettings(97, "chain-b")
		b.Favicon = "https://example.com/b.ico"
		f.resolver.set(97, b)

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()
		f.controller.UpdateWallet(ctx, connected(97))
		f.controller.Wait()
		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		assert.Equal(t, 1, f.resolver.callCount(56))
		assert.Equal(t, 3, f.reloader.Count())
		cached, _, err := f.store.Get(ctx, usecase.FaviconKey)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a.ico", cached)
	})

	t.Run("snapshot reads one recompute", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.set(56, readySettings(56, "a"))

		before := f.controller.Snapshot()
		assert.Equal(t, usecase.ReasonSnapshot, before.Reason)
		assert.Equal(t, domain.StateLoading, before.Readiness.State)
		assert.Equal(t, domain.DefaultSettings(), before.Settings)

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()

		snap := f.controller.Snapshot()
		assert.Equal(t, usecase.ReasonSnapshot, snap.Reason)
		assert.Equal(t, connected(56), snap.Wallet)
		assert.Equal(t, f.controller.Readiness(), snap.Readiness)
		assert.Equal(t, domain.StateMainApp, snap.Readiness.State)
		assert.Equal(t, "a", snap.Settings.ProjectName)
	})

	t.Run("subscribers see every recompute", func(t *testing.T) {
		f := newControllerFixture()
		f.resolver.set(56, readySettings(56, "a"))

		var mu sync.Mutex
		var reasons []string
		var states []domain.ReadinessState
		unsubscribe := f.controller.Subscribe(func(u usecase.ReadinessUpdate) {
			mu.Lock()
			defer mu.Unlock()
			reasons = append(reasons, u.Reason)
			states = append(states, u.Readiness.State)
		})

		f.controller.UpdateWallet(ctx, connected(56))
		f.controller.Wait()
		f.controller.ToggleAdminManagement(true)

		unsubscribe()
		f.controller.ToggleAdminManagement(false)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []string{usecase.ReasonChain, usecase.ReasonSettings, usecase.ReasonManagement}, reasons)
		assert.Equal(t, []domain.ReadinessState{domain.StateLoading, domain.StateMainApp, domain.StateAdminPanel}, states)
	})
}

func TestFaviconSync(t *testing.T) {
	ctx := context.Background()

	store := newMemoryStore()
	reloader := &countingReloader{}
	favicon := usecase.NewFaviconSync(store, reloader, testLogger())

	reloaded, err := favicon.Apply(ctx, "")
	require.NoError(t, err)
	assert.False(t, reloaded, "nothing cached and nothing to apply")

	reloaded, err = favicon.Apply(ctx, "https://example.com/a.ico")
	require.NoError(t, err)
	assert.True(t, reloaded)

	reloaded, err = favicon.Apply(ctx, "https://example.com/a.ico")
	require.NoError(t, err)
	assert.False(t, reloaded)

	reloaded, err = favicon.Apply(ctx, "https://example.com/b.ico")
	require.NoError(t, err)
	assert.True(t, reloaded)

	cached, ok, err := store.Get(ctx, usecase.FaviconKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/b.ico", cached)

	reloaded, err = favicon.Apply(ctx, "")
	require.NoError(t, err)
	assert.True(t, reloaded)

	assert.Equal(t, 3, reloader.Count())
	assert.Equal(t, []string{"favicon", "favicon", "favicon"}, reloader.reasons)
}
