package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/observability/metrics"
	"github.com/patrickmn/go-cache"
)

// Update reasons passed to subscribers
const (
	ReasonWallet     = "wallet"
	ReasonChain      = "chain"
	ReasonSettings   = "settings"
	ReasonManagement = "management"
	ReasonSnapshot   = "snapshot"
)

// ReadinessUpdate is delivered to subscribers after every recompute
type ReadinessUpdate struct {
	Reason    string                `json:"reason"`
	Wallet    domain.WalletSignals  `json:"wallet"`
	Readiness domain.Readiness      `json:"readiness"`
	Settings  domain.DomainSettings `json:"settings"`
}

type subscriber struct {
	id int
	fn func(ReadinessUpdate)
}

// ReadinessController owns the current settings snapshot and derives the render state
// from it and the wallet signals. Every input change goes through recompute, which
// notifies subscribers.
type ReadinessController struct {
	resolver  SettingsResolver
	favicon   *FaviconSync
	supported []uint64
	timeout   time.Duration
	snapshots *cache.Cache
	log       *slog.Logger

	mu         sync.Mutex
	wallet     domain.WalletSignals
	settings   *domain.DomainSettings
	loaded     bool // a fetch completed for wallet.ChainID
	started    bool
	management bool
	generation uint64
	readiness  domain.Readiness

	subMu       sync.Mutex
	subscribers []subscriber
	nextSubID   int

	// faviconMu orders favicon syncs; a sync only runs for the live snapshot
	faviconMu sync.Mutex

	inflight sync.WaitGroup
}

// NewReadinessController creates a new ReadinessController
func NewReadinessController(
	resolver SettingsResolver,
	favicon *FaviconSync,
	cfg *config.RuntimeConfig,
	log *slog.Logger,
) *ReadinessController {
	ttl := cfg.Cache.TTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}

	return &ReadinessController{
		resolver:  resolver,
		favicon:   favicon,
		supported: cfg.SupportedChainIDs(),
		timeout:   cfg.Timeout,
		snapshots: cache.New(ttl, cfg.Cache.CleanupInterval),
		log:       log.With("component", "ReadinessController"),
		readiness: domain.Readiness{State: domain.StateLoading},
	}
}

// UpdateWallet records new wallet signals. A chain change starts a fetch unless a
// snapshot with a known pair hash is cached for the new chain. Account and connection
// changes only recompute.
func (c *ReadinessController) UpdateWallet(ctx context.Context, w domain.WalletSignals) {
	c.mu.Lock()
	chainChanged := !c.started || c.wallet.ChainID != w.ChainID
	c.wallet = w
	reason := ReasonWallet

	var gen uint64
	var cached *domain.DomainSettings
	fetch := false
	if chainChanged {
		reason = ReasonChain
		c.started = true
		c.generation++
		gen = c.generation

		if s, ok := c.cachedSnapshot(w.ChainID); ok {
			cached = s
			c.settings = cached
			c.loaded = true
			metrics.CacheHit()
			c.log.Debug("Using cached settings", "chainId", w.ChainID, "pairHash", cached.PairHash)
		} else {
			c.loaded = false
			fetch = true
		}
	}
	update := c.recomputeLocked(reason)
	c.mu.Unlock()

	c.notify(update)
	if cached != nil {
		c.syncFavicon(ctx, cached)
	}
	if fetch {
		c.startFetch(ctx, gen, w.ChainID)
	}
}

// Refresh re-resolves settings for the current chain. The snapshot cache is bypassed and
// any fetch already in flight is superseded. The current state stays visible until the
// new snapshot arrives.
func (c *ReadinessController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.started = true
	c.generation++
	gen := c.generation
	chainID := c.wallet.ChainID
	c.snapshots.Delete(cacheKey(chainID))
	c.mu.Unlock()

	c.startFetch(ctx, gen, chainID)
}

// ToggleAdminManagement sets the management mode flag
func (c *ReadinessController) ToggleAdminManagement(active bool) {
	c.mu.Lock()
	c.management = active
	update := c.recomputeLocked(ReasonManagement)
	c.mu.Unlock()

	c.notify(update)
}

// Settings returns the latest snapshot, or the zero value before the first load
func (c *ReadinessController) Settings() domain.DomainSettings {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.settings == nil {
		return domain.DefaultSettings()
	}
	return *c.settings
}

// Readiness returns the current render state
func (c *ReadinessController) Readiness() domain.Readiness {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readiness
}

// Wallet returns the last wallet signals
func (c *ReadinessController) Wallet() domain.WalletSignals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wallet
}

// Snapshot returns the wallet, render state and settings of the latest recompute,
// read under one lock.
func (c *ReadinessController) Snapshot() ReadinessUpdate {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updateLocked(ReasonSnapshot)
}

// Subscribe registers fn for every recompute. The returned func removes it.
func (c *ReadinessController) Subscribe(fn func(ReadinessUpdate)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Wait blocks until every fetch started so far has been applied or discarded
func (c *ReadinessController) Wait() {
	c.inflight.Wait()
}

func (c *ReadinessController) startFetch(ctx context.Context, gen, chainID uint64) {
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		// The fetch outlives the request that triggered it; only its result is dropped
		// when superseded.
		fetchCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.timeout)
			defer cancel()
		}

		settings, err := c.resolver.Run(fetchCtx, ResolveDomainSettingsParams{ChainID: chainID})
		c.apply(fetchCtx, gen, chainID, settings, err)
	}()
}

func (c *ReadinessController) apply(ctx context.Context, gen, chainID uint64, settings *domain.DomainSettings, err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		metrics.StaleDiscarded()
		c.log.Debug("Discarding stale settings", "chainId", chainID, "generation", gen)
		return
	}
	if err != nil || settings == nil {
		c.mu.Unlock()
		c.log.Warn("Settings fetch failed, keeping previous state", "chainId", chainID, "err", err)
		return
	}

	c.settings = settings
	c.loaded = true
	c.snapshots.SetDefault(cacheKey(chainID), settings)
	update := c.recomputeLocked(ReasonSettings)
	c.mu.Unlock()

	c.notify(update)
	c.syncFavicon(ctx, settings)
}

// syncFavicon pushes the favicon of settings to the favicon cache. It is skipped when a
// newer snapshot replaced settings in the meantime; that snapshot syncs its own favicon.
func (c *ReadinessController) syncFavicon(ctx context.Context, settings *domain.DomainSettings) {
	if c.favicon == nil {
		return
	}

	c.faviconMu.Lock()
	defer c.faviconMu.Unlock()

	c.mu.Lock()
	live := c.settings == settings
	c.mu.Unlock()
	if !live {
		c.log.Debug("Skipping favicon sync of replaced snapshot", "favicon", settings.Favicon)
		return
	}

	if _, err := c.favicon.Apply(ctx, settings.Favicon); err != nil {
		c.log.Warn("Unable to sync favicon", "err", err)
	}
}

// cachedSnapshot returns the cached snapshot for chainID when its pair hash is known
func (c *ReadinessController) cachedSnapshot(chainID uint64) (*domain.DomainSettings, bool) {
	v, ok := c.snapshots.Get(cacheKey(chainID))
	if !ok {
		return nil, false
	}
	s, ok := v.(*domain.DomainSettings)
	if !ok || s.PairHash == "" {
		return nil, false
	}
	return s, true
}

func (c *ReadinessController) recomputeLocked(reason string) ReadinessUpdate {
	c.readiness = domain.DeriveReadiness(domain.ReadinessInput{
		Loaded:            c.loaded,
		Management:        c.management,
		Wallet:            c.wallet,
		Settings:          c.settings,
		SupportedChainIDs: c.supported,
	})
	metrics.Readiness(string(c.readiness.State))
	return c.updateLocked(reason)
}

func (c *ReadinessController) updateLocked(reason string) ReadinessUpdate {
	update := ReadinessUpdate{
		Reason:    reason,
		Wallet:    c.wallet,
		Readiness: c.readiness,
		Settings:  domain.DefaultSettings(),
	}
	if c.settings != nil {
		update.Settings = *c.settings
	}
	return update
}

func (c *ReadinessController) notify(update ReadinessUpdate) {
	c.subMu.Lock()
	subs := make([]subscriber, len(c.subscribers))
	copy(subs, c.subscribers)
	c.subMu.Unlock()

	for _, s := range subs {
		s.fn(update)
	}
}

func cacheKey(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}
