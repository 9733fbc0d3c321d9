package interactive

import (
	"context"
	"testing"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzySearch(t *testing.T) {
	search := FuzzySearch([]string{"bsc 56", "bsc-testnet 97", "polygon 137"})

	assert.True(t, search("", 2))
	assert.True(t, search("BSC", 0))
	assert.True(t, search("97", 1))
	assert.True(t, search("bsct", 1))
	assert.False(t, search("polygon", 0))
}

func TestSelectNetwork(t *testing.T) {
	ctx := context.Background()
	networks := []config.Network{{ChainID: 56, Name: "bsc"}, {ChainID: 97, Name: "bsc-testnet"}}

	t.Run("non-interactive", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{NonInteractive: true})
		_, err := s.SelectNetwork(ctx, networks, "Network")
		assert.ErrorContains(t, err, "non-interactive")
	})

	t.Run("single option", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		network, err := s.SelectNetwork(ctx, networks[:1], "Network")
		require.NoError(t, err)
		assert.Equal(t, uint64(56), network.ChainID)
	})

	t.Run("no options", func(t *testing.T) {
		s := NewSelectorAdapter(&config.RuntimeConfig{})
		_, err := s.SelectNetwork(ctx, nil, "Network")
		assert.Error(t, err)
	})
}
