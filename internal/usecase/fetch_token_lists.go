package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/definance/dexgate/internal/domain"
)

// FetchTokenListsParams contains parameters for fetching remote token lists
type FetchTokenListsParams struct {
	ChainID uint64
	// Sources overrides the addressesOfTokenLists of the domain settings
	Sources []string
}

// FetchedTokenList is the outcome for a single source
type FetchedTokenList struct {
	Source string
	List   *domain.TokenList
	// Dropped counts the tokens removed by the chain filter
	Dropped int
	Error   error
}

// FetchTokenListsResult contains the result of fetching token lists
type FetchTokenListsResult struct {
	ChainID uint64
	Lists   []FetchedTokenList
}

// FetchTokenLists downloads the token lists a domain references by URL or IPFS hash
type FetchTokenLists struct {
	resolver SettingsResolver
	source   TokenListSource
	filter   TokenListFilter
	sink     ProgressSink
}

// NewFetchTokenLists creates a new FetchTokenLists use case
func NewFetchTokenLists(resolver SettingsResolver, source TokenListSource, filter TokenListFilter, sink ProgressSink) *FetchTokenLists {
	return &FetchTokenLists{
		resolver: resolver,
		source:   source,
		filter:   filter,
		sink:     sink,
	}
}

// Run executes the use case. Per-source failures are reported in the result and do not
// stop the remaining sources.
func (uc *FetchTokenLists) Run(ctx context.Context, params FetchTokenListsParams) (*FetchTokenListsResult, error) {
	sources := params.Sources
	if len(sources) == 0 {
		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "resolving",
			Message: "Resolving domain settings",
			Spinner: true,
		})

		settings, err := uc.resolver.Run(ctx, ResolveDomainSettingsParams{ChainID: params.ChainID})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token list sources: %w", err)
		}
		sources = settings.AddressesOfTokenLists
	}

	result := &FetchTokenListsResult{
		ChainID: params.ChainID,
		Lists:   make([]FetchedTokenList, 0, len(sources)),
	}

	for i, src := range sources {
		src = strings.TrimSpace(src)
		if src == "" {
			continue
		}

		uc.sink.OnProgress(ctx, ProgressEvent{
			Stage:   "fetching",
			Message: fmt.Sprintf("Fetching token list %d/%d", i+1, len(sources)),
			Spinner: true,
		})

		fetched := FetchedTokenList{Source: src}
		list, err := uc.source.FetchTokenList(ctx, src)
		if err != nil {
			fetched.Error = err
			result.Lists = append(result.Lists, fetched)
			continue
		}

		fetched.List, fetched.Dropped = uc.filterList(params.ChainID, src, list)
		result.Lists = append(result.Lists, fetched)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "completed",
		Message: fmt.Sprintf("Fetched %d token lists", len(result.Lists)),
	})

	return result, nil
}

func (uc *FetchTokenLists) filterList(chainID uint64, src string, list *domain.TokenList) (*domain.TokenList, int) {
	if list.ID == "" {
		list.ID = src
	}
	if uc.filter == nil || chainID == 0 {
		return list, 0
	}

	filtered, ok := uc.filter.Filter(chainID, map[string]domain.TokenList{list.ID: *list})[list.ID]
	if !ok {
		return &domain.TokenList{ID: list.ID, Name: list.Name, LogoURI: list.LogoURI, Tokens: []domain.Token{}}, len(list.Tokens)
	}
	return &filtered, len(list.Tokens) - len(filtered.Tokens)
}
