package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/definance/dexgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dexgate.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
domain = "swap.example.com"
timeout = "5s"
log_level = "error"

[networks.mumbai]
disabled = true

[networks.localnet]
chain_id = 31337
rpc_url = "http://127.0.0.1:1"
`), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "dexgate version dev")
}

func TestNetworksCmd(t *testing.T) {
	path := writeTestConfig(t)

	out, err := execute(t, "networks", "--config", path, "--non-interactive", "--json")
	require.NoError(t, err)

	var networks []struct {
		Name    string `json:"name"`
		ChainID uint64 `json:"chainId"`
		Usable  bool   `json:"usable"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &networks))

	names := make([]string, 0, len(networks))
	for _, n := range networks {
		names = append(names, n.Name)
		assert.False(t, n.Usable)
	}
	assert.Equal(t, []string{"ethereum", "bsc", "bsc-testnet", "polygon", "localnet"}, names)
}

func TestResolveCmd(t *testing.T) {
	path := writeTestConfig(t)

	t.Run("storage not configured", func(t *testing.T) {
		_, err := execute(t, "resolve", "--config", path, "--non-interactive", "--json")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrStorageRead)
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := execute(t, "resolve", "--config", path, "--non-interactive", "--network", "mumbai")
		assert.ErrorIs(t, err, domain.ErrUnsupportedNetwork)
	})

	t.Run("conflicting chain flags", func(t *testing.T) {
		_, err := execute(t, "resolve", "--config", path, "--non-interactive", "--network", "bsc", "--chain-id", "56")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})

	t.Run("conflicting output flags", func(t *testing.T) {
		_, err := execute(t, "resolve", "--config", path, "--json", "--yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutually exclusive")
	})
}

func TestStatusCmd(t *testing.T) {
	path := writeTestConfig(t)

	t.Run("failed fetch keeps loading", func(t *testing.T) {
		out, err := execute(t, "status", "--config", path, "--non-interactive", "--json", "--chain-id", "56")
		require.NoError(t, err)

		var view struct {
			Wallet    domain.WalletSignals `json:"wallet"`
			Readiness domain.Readiness     `json:"readiness"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &view))
		assert.Equal(t, domain.StateLoading, view.Readiness.State)
		assert.Equal(t, uint64(56), view.Wallet.ChainID)
		assert.False(t, view.Wallet.Connected)
	})

	t.Run("invalid account", func(t *testing.T) {
		_, err := execute(t, "status", "--config", path, "--non-interactive", "--account", "0x12")
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
	})
}

func TestTokenListsCmdRequiresChain(t *testing.T) {
	path := writeTestConfig(t)

	_, err := execute(t, "tokenlists", "--config", path, "--non-interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a chain is required")
}
