package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/definance/dexgate/internal/observability/metrics"
)

// FaviconKey is the key the last applied favicon is cached under
const FaviconKey = "faviconUrl"

// FaviconSync keeps the cached favicon in step with the applied snapshot and asks
// clients to reload when it changes.
type FaviconSync struct {
	store    KeyValueStore
	reloader Reloader
	log      *slog.Logger

	mu sync.Mutex
}

// NewFaviconSync creates a new FaviconSync
func NewFaviconSync(store KeyValueStore, reloader Reloader, log *slog.Logger) *FaviconSync {
	return &FaviconSync{
		store:    store,
		reloader: reloader,
		log:      log.With("component", "FaviconSync"),
	}
}

// Apply compares favicon with the cached value. A new non-empty value is stored, a
// cleared value removes the cache entry; both request a reload. Returns whether a
// reload was requested.
func (f *FaviconSync) Apply(ctx context.Context, favicon string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cached, ok, err := f.store.Get(ctx, FaviconKey)
	if err != nil {
		return false, fmt.Errorf("failed to read cached favicon: %w", err)
	}

	switch {
	case favicon != "" && (!ok || cached != favicon):
		if err := f.store.Set(ctx, FaviconKey, favicon); err != nil {
			return false, fmt.Errorf("failed to cache favicon: %w", err)
		}
		f.log.Debug("Favicon changed", "from", cached, "to", favicon)
	case favicon == "" && ok:
		if err := f.store.Remove(ctx, FaviconKey); err != nil {
			return false, fmt.Errorf("failed to clear cached favicon: %w", err)
		}
		f.log.Debug("Favicon cleared", "from", cached)
	default:
		return false, nil
	}

	metrics.FaviconReload()
	if f.reloader != nil {
		f.reloader.Reload(ctx, "favicon")
	}
	return true, nil
}
