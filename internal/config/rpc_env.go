package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates a conventional env var name for a network's RPC URL.
// Convention: uppercase, dashes/dots to underscores, append _RPC_URL.
// Examples: bsc -> BSC_RPC_URL, bsc-testnet -> BSC_TESTNET_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// resolveRPCURL returns the RPC URL for a network. <NAME>_RPC_URL in the environment
// wins over the configured value. When the configured value is a bare ${VAR} reference
// to an unset variable the URL is empty and the variable name is returned.
func resolveRPCURL(networkName, raw string) (url string, missingVar string) {
	if override := os.Getenv(GenerateEnvVarName(networkName)); override != "" {
		return override, ""
	}
	if name, ok := DetectEnvVar(raw); ok {
		value := os.Getenv(name)
		if value == "" {
			return "", name
		}
		return value, ""
	}
	return os.ExpandEnv(raw), ""
}
