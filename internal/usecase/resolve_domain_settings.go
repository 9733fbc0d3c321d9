package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sort"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/observability/metrics"
	"github.com/samber/lo"
)

// ResolveDomainSettingsParams contains parameters for resolving domain settings
type ResolveDomainSettingsParams struct {
	// ChainID is the active chain. Zero means the wallet has not reported one.
	ChainID uint64
}

// ResolveDomainSettings builds the settings snapshot of the current domain from the
// storage contract and the live factory state of the active chain.
type ResolveDomainSettings struct {
	contracts ContractAccess
	domains   DomainProvider
	filter    TokenListFilter
	log       *slog.Logger
}

// NewResolveDomainSettings creates a new ResolveDomainSettings use case
func NewResolveDomainSettings(
	contracts ContractAccess,
	domains DomainProvider,
	filter TokenListFilter,
	log *slog.Logger,
) *ResolveDomainSettings {
	return &ResolveDomainSettings{
		contracts: contracts,
		domains:   domains,
		filter:    filter,
		log:       log.With("component", "ResolveDomainSettings"),
	}
}

var _ SettingsResolver = (*ResolveDomainSettings)(nil)

// Run resolves the snapshot. Domain lookup and storage read failures return a nil
// snapshot; parse and enrichment failures are logged and the snapshot degrades to defaults.
func (uc *ResolveDomainSettings) Run(ctx context.Context, params ResolveDomainSettingsParams) (*domain.DomainSettings, error) {
	name, err := uc.domains.CurrentDomain()
	if err == nil && name == "" {
		err = errors.New("empty domain name")
	}
	if err != nil {
		uc.log.Error("Unable to determine current domain", "err", err)
		metrics.SettingsResolve("domain_lookup_failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrDomainLookup, err)
	}

	record, err := uc.contracts.GetStorageRecord(ctx, name)
	if err != nil {
		uc.log.Error("Unable to read storage record", "domain", name, "err", err)
		metrics.SettingsResolve("storage_read_failed")
		return nil, fmt.Errorf("%w for %s: %v", domain.ErrStorageRead, name, err)
	}
	if record == nil {
		record = &domain.StorageRecord{}
	}

	settings, err := ParseSettings(record.Info, params.ChainID)
	if err != nil {
		uc.log.Warn("Unable to parse stored settings", "domain", name, "err", err, "source", record.Info)
	}

	if record.Owner != "" && !domain.IsZeroAddress(record.Owner) {
		settings.Admin = record.Owner
	}

	if settings.Factory != "" {
		if err := uc.enrich(ctx, &settings, params.ChainID); err != nil {
			uc.log.Warn("Factory enrichment failed", "chainId", params.ChainID, "factory", settings.Factory, "err", err)
			metrics.FactoryEnrichment("failed")
		} else {
			metrics.FactoryEnrichment("ok")
		}
	}

	settings.TokenLists = uc.tokenListsFor(params.ChainID, settings.TokenListsByChain)

	metrics.SettingsResolve("ok")
	return &settings, nil
}

// enrich overlays the factory state onto settings. settings is left untouched on failure.
func (uc *ResolveDomainSettings) enrich(ctx context.Context, settings *domain.DomainSettings, chainID uint64) error {
	info, err := uc.contracts.GetFactoryInfo(ctx, chainID, settings.Factory)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEnrichment, err)
	}
	if info == nil {
		return fmt.Errorf("%w: empty response", domain.ErrEnrichment)
	}

	settings.PairHash = ""
	if !domain.IsZeroHash(info.InitCodePairHash) {
		settings.PairHash = info.InitCodePairHash
	}
	settings.FeeRecipient = ""
	if !domain.IsZeroAddress(info.FeeTo) {
		settings.FeeRecipient = info.FeeTo
	}

	settings.ProtocolFee = lo.ToPtr(info.ProtocolFee)
	settings.TotalFee = lo.ToPtr(info.TotalFee)
	settings.AllFeeToProtocol = lo.ToPtr(info.AllFeeToProtocol)
	if info.TotalSwaps != nil {
		settings.TotalSwaps = new(big.Int).Set(info.TotalSwaps)
	}
	settings.PossibleProtocolPercent = append([]uint64{}, info.PossibleProtocolPercent...)
	return nil
}

// tokenListsFor filters the lists stored for chainID and flattens them in list id order.
// The per-chain map itself stays unfiltered.
func (uc *ResolveDomainSettings) tokenListsFor(chainID uint64, byChain map[uint64]map[string]domain.TokenList) []domain.TokenList {
	lists, ok := byChain[chainID]
	if !ok || len(lists) == 0 {
		return []domain.TokenList{}
	}

	filtered := lists
	if uc.filter != nil {
		filtered = uc.filter.Filter(chainID, lists)
	}

	ids := lo.Keys(filtered)
	sort.Strings(ids)
	return lo.Map(ids, func(id string, _ int) domain.TokenList {
		return filtered[id]
	})
}
