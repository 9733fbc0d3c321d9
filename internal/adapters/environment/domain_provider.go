package environment

import (
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
)

// DomainProviderAdapter resolves the domain name settings are stored under.
// The configured domain wins; otherwise the machine host name is used.
type DomainProviderAdapter struct {
	configured string
	hostname   func() (string, error)
}

// NewDomainProviderAdapter creates a new domain provider
func NewDomainProviderAdapter(cfg *config.RuntimeConfig) *DomainProviderAdapter {
	return &DomainProviderAdapter{
		configured: cfg.Domain,
		hostname:   os.Hostname,
	}
}

// CurrentDomain returns the normalized domain name
func (p *DomainProviderAdapter) CurrentDomain() (string, error) {
	if name := NormalizeDomain(p.configured); name != "" {
		return name, nil
	}

	host, err := p.hostname()
	if err != nil {
		return "", fmt.Errorf("failed to read host name: %w", err)
	}
	name := NormalizeDomain(host)
	if name == "" {
		return "", fmt.Errorf("host name is empty")
	}
	return name, nil
}

// NormalizeDomain strips a scheme, path and port from v and lower-cases it,
// so "https://Dex.Example.com:443/swap" becomes "dex.example.com".
func NormalizeDomain(v string) string {
	v = strings.TrimSpace(v)
	if i := strings.Index(v, "://"); i >= 0 {
		v = v[i+3:]
	}
	if i := strings.IndexAny(v, "/?#"); i >= 0 {
		v = v[:i]
	}
	if host, _, err := net.SplitHostPort(v); err == nil {
		v = host
	}
	return strings.ToLower(strings.TrimSuffix(v, "."))
}

// Ensure the adapter implements the interface
var _ usecase.DomainProvider = (*DomainProviderAdapter)(nil)
