package metrics

// SettingsResolve records the outcome of a settings resolution.
func SettingsResolve(outcome string) {
	if !enabled {
		return
	}
	resolveTotal.WithLabelValues(outcome).Inc()
}

// FactoryEnrichment records a factory info read.
func FactoryEnrichment(status string) {
	if !enabled {
		return
	}
	enrichmentTotal.WithLabelValues(status).Inc()
}

// StaleDiscarded records a fetch result that was not applied.
func StaleDiscarded() {
	if !enabled {
		return
	}
	staleDiscarded.Inc()
}

// CacheHit records a chain switch served from the snapshot cache.
func CacheHit() {
	if !enabled {
		return
	}
	cacheHits.Inc()
}

// Readiness records a readiness recomputation.
func Readiness(state string) {
	if !enabled {
		return
	}
	readinessTotal.WithLabelValues(state).Inc()
}

// FaviconReload records a reload request.
func FaviconReload() {
	if !enabled {
		return
	}
	faviconReloads.Inc()
}

// EventClients adjusts the connected websocket client gauge.
func EventClients(delta float64) {
	if !enabled {
		return
	}
	wsClients.Add(delta)
}
