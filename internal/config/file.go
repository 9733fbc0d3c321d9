package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ConfigFileName is the name of the project configuration file
const ConfigFileName = "dexgate.toml"

// FileConfig represents the raw dexgate.toml structure
type FileConfig struct {
	Domain    string                 `toml:"domain"`
	DataDir   string                 `toml:"data_dir"`
	Timeout   string                 `toml:"timeout"`
	LogFormat string                 `toml:"log_format"`
	LogLevel  string                 `toml:"log_level"`
	Storage   StorageTOML            `toml:"storage"`
	Networks  map[string]NetworkTOML `toml:"networks"`
	Gateway   GatewayTOML            `toml:"gateway"`
	Server    ServerTOML             `toml:"server"`
	Cache     CacheTOML              `toml:"cache"`
}

// StorageTOML is the [storage] section
type StorageTOML struct {
	ChainID uint64 `toml:"chain_id"`
	RPCURL  string `toml:"rpc_url"`
	Address string `toml:"address"`
}

// NetworkTOML is a [networks.<name>] section. Entries override the built-in
// network with the same chain id or add a new one.
type NetworkTOML struct {
	ChainID      uint64 `toml:"chain_id"`
	RPCURL       string `toml:"rpc_url"`
	ExplorerURL  string `toml:"explorer_url"`
	WrappedToken string `toml:"wrapped_token"`
	Disabled     bool   `toml:"disabled"`
}

// GatewayTOML is the [gateway] section
type GatewayTOML struct {
	IPFSURL        string `toml:"ipfs_url"`
	RequestsPerMin int    `toml:"requests_per_min"`
	Timeout        string `toml:"timeout"`
}

// ServerTOML is the [server] section
type ServerTOML struct {
	Listen         string   `toml:"listen"`
	Metrics        *bool    `toml:"metrics"`
	AllowedOrigins []string `toml:"allowed_origins"`
}

// CacheTOML is the [cache] section
type CacheTOML struct {
	TTL             string `toml:"ttl"`
	CleanupInterval string `toml:"cleanup_interval"`
}

// LoadEnvFiles loads .env and .env.local from dir when present.
// Variables already set in the process environment are kept.
func LoadEnvFiles(dir string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(dir, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// LoadFile parses a dexgate.toml file. A missing file yields an empty config.
// ${VAR} references in string values are expanded from the environment.
func LoadFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	cfg.expandEnv()
	return cfg, nil
}

func (f *FileConfig) expandEnv() {
	f.Domain = os.ExpandEnv(f.Domain)
	f.DataDir = os.ExpandEnv(f.DataDir)
	f.Storage.RPCURL = os.ExpandEnv(f.Storage.RPCURL)
	f.Storage.Address = os.ExpandEnv(f.Storage.Address)
	f.Gateway.IPFSURL = os.ExpandEnv(f.Gateway.IPFSURL)

	// Network RPC URLs are expanded in resolveRPCURL
	for name, network := range f.Networks {
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		f.Networks[name] = network
	}
}

// parseDuration parses an optional duration setting
func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
