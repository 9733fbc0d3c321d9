package tokenlist

import (
	"strings"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/samber/lo"
)

const maxDecimals = 255

// Filter keeps the tokens of a list that can be used on a chain
type Filter struct{}

// NewFilter creates a new token list filter
func NewFilter() *Filter {
	return &Filter{}
}

// Filter returns a copy of lists holding only valid tokens for chainID. A token is
// valid when it targets chainID, has a valid address, a symbol and at most 255 decimals.
// Duplicate addresses keep their first entry. Lists left without tokens are dropped.
func (f *Filter) Filter(chainID uint64, lists map[string]domain.TokenList) map[string]domain.TokenList {
	out := make(map[string]domain.TokenList, len(lists))
	for id, list := range lists {
		tokens := lo.Filter(list.Tokens, func(t domain.Token, _ int) bool {
			return ValidToken(chainID, t)
		})
		tokens = lo.UniqBy(tokens, func(t domain.Token) string {
			return strings.ToLower(t.Address)
		})
		if len(tokens) == 0 {
			continue
		}

		list.ID = id
		list.Tokens = tokens
		out[id] = list
	}
	return out
}

// ValidToken reports whether t can be listed on chainID
func ValidToken(chainID uint64, t domain.Token) bool {
	if t.ChainID != chainID {
		return false
	}
	if !domain.IsValidAddress(t.Address) || domain.IsZeroAddress(t.Address) {
		return false
	}
	if strings.TrimSpace(t.Symbol) == "" {
		return false
	}
	return t.Decimals >= 0 && t.Decimals <= maxDecimals
}

// Ensure Filter implements the interface
var _ usecase.TokenListFilter = (*Filter)(nil)
