package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFetchTokenLists(t *testing.T) {
	ctx := context.Background()

	list := func() *domain.TokenList {
		return &domain.TokenList{
			Name: "Remote",
			Tokens: []domain.Token{
				{ChainID: 56, Address: "0x7777777777777777777777777777777777777777", Symbol: "A"},
				{ChainID: 1, Address: "0x8888888888888888888888888888888888888888", Symbol: "X"},
			},
		}
	}

	t.Run("sources from settings", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.AddressesOfTokenLists = []string{"https://lists.example.com/a.json", " ", "ipfs://bafybeigdyrzt"}

		resolver := new(MockSettingsResolver)
		resolver.On("Run", ctx, usecase.ResolveDomainSettingsParams{ChainID: 56}).Return(&settings, nil)

		source := new(MockTokenListSource)
		source.On("FetchTokenList", ctx, "https://lists.example.com/a.json").Return(list(), nil)
		source.On("FetchTokenList", ctx, "ipfs://bafybeigdyrzt").Return(nil, errors.New("gateway timeout"))

		progress := &MockProgressSink{}
		uc := usecase.NewFetchTokenLists(resolver, source, chainFilter{}, progress)

		result, err := uc.Run(ctx, usecase.FetchTokenListsParams{ChainID: 56})
		require.NoError(t, err)
		require.Len(t, result.Lists, 2)

		first := result.Lists[0]
		require.NoError(t, first.Error)
		assert.Equal(t, "https://lists.example.com/a.json", first.List.ID)
		assert.Len(t, first.List.Tokens, 1)
		assert.Equal(t, 1, first.Dropped)

		assert.EqualError(t, result.Lists[1].Error, "gateway timeout")
		assert.Nil(t, result.Lists[1].List)

		assert.Equal(t, "resolving", progress.events[0].Stage)
		assert.Equal(t, "completed", progress.events[len(progress.events)-1].Stage)

		resolver.AssertExpectations(t)
		source.AssertExpectations(t)
	})

	t.Run("explicit sources skip resolution", func(t *testing.T) {
		resolver := new(MockSettingsResolver)
		source := new(MockTokenListSource)
		source.On("FetchTokenList", ctx, "QmHash").Return(list(), nil)

		uc := usecase.NewFetchTokenLists(resolver, source, chainFilter{}, &MockProgressSink{})
		result, err := uc.Run(ctx, usecase.FetchTokenListsParams{ChainID: 137, Sources: []string{"QmHash"}})
		require.NoError(t, err)
		require.Len(t, result.Lists, 1)

		// No tokens for chain 137
		assert.Empty(t, result.Lists[0].List.Tokens)
		assert.Equal(t, 2, result.Lists[0].Dropped)
		resolver.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("resolution failure", func(t *testing.T) {
		resolver := new(MockSettingsResolver)
		resolver.On("Run", ctx, usecase.ResolveDomainSettingsParams{ChainID: 56}).Return(nil, domain.ErrDomainLookup)

		uc := usecase.NewFetchTokenLists(resolver, new(MockTokenListSource), chainFilter{}, &MockProgressSink{})
		_, err := uc.Run(ctx, usecase.FetchTokenListsParams{ChainID: 56})
		assert.ErrorIs(t, err, domain.ErrDomainLookup)
	})
}
