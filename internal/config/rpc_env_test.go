package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEnvVar(t *testing.T) {
	tests := []struct {
		name       string
		rawValue   string
		wantEnvVar string
		wantIsVar  bool
	}{
		{
			name:       "simple env var",
			rawValue:   "${BSC_RPC_URL}",
			wantEnvVar: "BSC_RPC_URL",
			wantIsVar:  true,
		},
		{
			name:       "env var with underscores",
			rawValue:   "${BSC_TESTNET_RPC_URL}",
			wantEnvVar: "BSC_TESTNET_RPC_URL",
			wantIsVar:  true,
		},
		{
			name:       "hardcoded URL",
			rawValue:   "https://bsc-dataseed.binance.org",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "env var with path suffix",
			rawValue:   "${MY_VAR}/path",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "empty string",
			rawValue:   "",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "localhost URL",
			rawValue:   "http://localhost:8545",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "env var starting with underscore",
			rawValue:   "${_MY_VAR}",
			wantEnvVar: "_MY_VAR",
			wantIsVar:  true,
		},
		{
			name:       "partial env var syntax - missing closing brace",
			rawValue:   "${UNCLOSED",
			wantEnvVar: "",
			wantIsVar:  false,
		},
		{
			name:       "dollar without braces",
			rawValue:   "$MY_VAR",
			wantEnvVar: "",
			wantIsVar:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envVar, isVar := DetectEnvVar(tt.rawValue)
			assert.Equal(t, tt.wantEnvVar, envVar)
			assert.Equal(t, tt.wantIsVar, isVar)
		})
	}
}

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		name        string
		networkName string
		want        string
	}{
		{
			name:        "simple network",
			networkName: "bsc",
			want:        "BSC_RPC_URL",
		},
		{
			name:        "network with dash",
			networkName: "bsc-testnet",
			want:        "BSC_TESTNET_RPC_URL",
		},
		{
			name:        "network with number and dash",
			networkName: "local-31337",
			want:        "LOCAL_31337_RPC_URL",
		},
		{
			name:        "already uppercase",
			networkName: "MAINNET",
			want:        "MAINNET_RPC_URL",
		},
		{
			name:        "mixed case with dash",
			networkName: "Base-Sepolia",
			want:        "BASE_SEPOLIA_RPC_URL",
		},
		{
			name:        "network with dot",
			networkName: "polygon.zkevm",
			want:        "POLYGON_ZKEVM_RPC_URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateEnvVarName(tt.networkName)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRPCURL(t *testing.T) {
	t.Run("network override wins", func(t *testing.T) {
		t.Setenv("DEXLOCAL_RPC_URL", "http://override:8545")
		url, missing := resolveRPCURL("dexlocal", "http://localhost:8545")
		assert.Equal(t, "http://override:8545", url)
		assert.Empty(t, missing)
	})

	t.Run("expands referenced variable", func(t *testing.T) {
		t.Setenv("DEXGATE_TEST_NODE", "https://node.example")
		url, missing := resolveRPCURL("dexlocal", "${DEXGATE_TEST_NODE}")
		assert.Equal(t, "https://node.example", url)
		assert.Empty(t, missing)
	})

	t.Run("reports unset variable", func(t *testing.T) {
		url, missing := resolveRPCURL("dexlocal", "${DEXGATE_TEST_UNSET_NODE}")
		assert.Empty(t, url)
		assert.Equal(t, "DEXGATE_TEST_UNSET_NODE", missing)
	})

	t.Run("expands embedded variables", func(t *testing.T) {
		t.Setenv("DEXGATE_TEST_KEY", "abc")
		url, _ := resolveRPCURL("dexlocal", "https://rpc.example/${DEXGATE_TEST_KEY}")
		assert.Equal(t, "https://rpc.example/abc", url)
	})
}
