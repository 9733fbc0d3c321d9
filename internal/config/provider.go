package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultTimeout         = 30 * time.Second
	defaultListen          = "127.0.0.1:8645"
	defaultCacheTTL        = 10 * time.Minute
	defaultCleanupInterval = 15 * time.Minute
	defaultGatewayTimeout  = 15 * time.Second
	defaultRequestsPerMin  = 30
	defaultIPFSURL         = "https://gateway.pinata.cloud/ipfs"
)

// flagKeys maps flag names to the viper keys they set when they differ
var flagKeys = map[string]string{
	"listen":  "server.listen",
	"metrics": "server.metrics",
	"storage": "storage.address",
}

// Provider creates RuntimeConfig for Wire dependency injection.
// Precedence: flags, DEXGATE_* environment, dexgate.toml, built-in defaults.
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	configPath := v.GetString("config")
	if configPath == "" {
		configPath = FindConfigFile()
	}

	baseDir := "."
	if configPath != "" {
		baseDir = filepath.Dir(configPath)
	}
	LoadEnvFiles(baseDir)

	file, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return build(v, file, configPath, baseDir)
}

func build(v *viper.Viper, file *FileConfig, configPath, baseDir string) (*config.RuntimeConfig, error) {
	cfg := &config.RuntimeConfig{
		ConfigPath:     configPath,
		DataDir:        filepath.Join(baseDir, ".dexgate"),
		Domain:         file.Domain,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json") || v.GetBool("yaml"),
		LogFormat:      file.LogFormat,
		LogLevel:       file.LogLevel,
	}
	if file.DataDir != "" {
		cfg.DataDir = file.DataDir
		if !filepath.IsAbs(cfg.DataDir) {
			cfg.DataDir = filepath.Join(baseDir, cfg.DataDir)
		}
	}

	var err error
	if cfg.Timeout, err = parseDuration("timeout", file.Timeout, defaultTimeout); err != nil {
		return nil, err
	}

	networks, warnings, err := mergeNetworks(DefaultNetworks(), file.Networks)
	if err != nil {
		return nil, err
	}
	cfg.Networks = networks
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	cfg.Storage = config.StorageConfig{
		ChainID: file.Storage.ChainID,
		RPCURL:  file.Storage.RPCURL,
		Address: file.Storage.Address,
	}

	cfg.Gateway = config.GatewayConfig{
		IPFSURL:        file.Gateway.IPFSURL,
		RequestsPerMin: file.Gateway.RequestsPerMin,
	}
	if cfg.Gateway.IPFSURL == "" {
		cfg.Gateway.IPFSURL = defaultIPFSURL
	}
	if cfg.Gateway.RequestsPerMin <= 0 {
		cfg.Gateway.RequestsPerMin = defaultRequestsPerMin
	}
	if cfg.Gateway.Timeout, err = parseDuration("gateway.timeout", file.Gateway.Timeout, defaultGatewayTimeout); err != nil {
		return nil, err
	}

	cfg.Server = config.ServerConfig{
		Listen:         file.Server.Listen,
		MetricsEnabled: true,
		AllowedOrigins: file.Server.AllowedOrigins,
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = defaultListen
	}
	if file.Server.Metrics != nil {
		cfg.Server.MetricsEnabled = *file.Server.Metrics
	}

	if cfg.Cache.TTL, err = parseDuration("cache.ttl", file.Cache.TTL, defaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.Cache.CleanupInterval, err = parseDuration("cache.cleanup_interval", file.Cache.CleanupInterval, defaultCleanupInterval); err != nil {
		return nil, err
	}

	if err := applyOverrides(v, cfg); err != nil {
		return nil, err
	}

	// The storage network falls back to the matching entry of the network table
	if cfg.Storage.ChainID == 0 {
		cfg.Storage.ChainID = DefaultStorageChainID
	}
	if cfg.Storage.RPCURL == "" {
		if network, ok := cfg.NetworkByChainID(cfg.Storage.ChainID); ok {
			cfg.Storage.RPCURL = network.RPCURL
		}
	}

	return cfg, nil
}

// applyOverrides copies flag and DEXGATE_* values over the file configuration
func applyOverrides(v *viper.Viper, cfg *config.RuntimeConfig) error {
	if v.IsSet("domain") {
		cfg.Domain = v.GetString("domain")
	}
	if v.IsSet("data_dir") {
		cfg.DataDir = v.GetString("data_dir")
	}
	if v.IsSet("timeout") {
		d, err := parseDuration("timeout", v.GetString("timeout"), defaultTimeout)
		if err != nil {
			return err
		}
		cfg.Timeout = d
	}
	if v.IsSet("log_format") {
		cfg.LogFormat = v.GetString("log_format")
	}
	if v.IsSet("log_level") {
		cfg.LogLevel = v.GetString("log_level")
	}
	if v.IsSet("storage.chain_id") {
		cfg.Storage.ChainID = v.GetUint64("storage.chain_id")
	}
	if v.IsSet("storage.rpc_url") {
		cfg.Storage.RPCURL = v.GetString("storage.rpc_url")
	}
	if v.IsSet("storage.address") {
		cfg.Storage.Address = v.GetString("storage.address")
	}
	if v.IsSet("gateway.ipfs_url") {
		cfg.Gateway.IPFSURL = v.GetString("gateway.ipfs_url")
	}
	if v.IsSet("gateway.requests_per_min") {
		cfg.Gateway.RequestsPerMin = v.GetInt("gateway.requests_per_min")
	}
	if v.IsSet("server.listen") {
		cfg.Server.Listen = v.GetString("server.listen")
	}
	if v.IsSet("server.metrics") {
		cfg.Server.MetricsEnabled = v.GetBool("server.metrics")
	}
	return nil
}

// FindConfigFile walks up from the current directory to find dexgate.toml.
// It returns "" when there is none.
func FindConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance bound to the flags of cmd
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("DEXGATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if cmd != nil {
		bind := func(f *pflag.Flag) {
			if err := v.BindPFlag(flagKey(f.Name), f); err != nil {
				panic(err)
			}
		}
		cmd.Flags().VisitAll(bind)
		cmd.InheritedFlags().VisitAll(bind)
	}

	return v
}

func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}
