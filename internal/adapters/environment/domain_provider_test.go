package environment

import (
	"errors"
	"testing"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dex.example.com", "dex.example.com"},
		{"  Dex.Example.COM ", "dex.example.com"},
		{"https://dex.example.com/swap?x=1", "dex.example.com"},
		{"dex.example.com:8080", "dex.example.com"},
		{"http://localhost:3000/", "localhost"},
		{"dex.example.com.", "dex.example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDomain(tt.in))
		})
	}
}

func TestCurrentDomain(t *testing.T) {
	t.Run("configured domain wins", func(t *testing.T) {
		p := NewDomainProviderAdapter(&config.RuntimeConfig{Domain: "https://Dex.Example.com"})
		p.hostname = func() (string, error) { return "box", nil }

		name, err := p.CurrentDomain()
		require.NoError(t, err)
		assert.Equal(t, "dex.example.com", name)
	})

	t.Run("falls back to host name", func(t *testing.T) {
		p := NewDomainProviderAdapter(&config.RuntimeConfig{})
		p.hostname = func() (string, error) { return "Box.local", nil }

		name, err := p.CurrentDomain()
		require.NoError(t, err)
		assert.Equal(t, "box.local", name)
	})

	t.Run("host name failure", func(t *testing.T) {
		p := NewDomainProviderAdapter(&config.RuntimeConfig{})
		p.hostname = func() (string, error) { return "", errors.New("boom") }

		_, err := p.CurrentDomain()
		assert.ErrorContains(t, err, "boom")
	})
}
