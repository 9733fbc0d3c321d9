package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/definance/dexgate/internal/domain"
	"github.com/definance/dexgate/internal/domain/config"
	"github.com/definance/dexgate/internal/usecase"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

const (
	// DefaultIPFSURL is the public gateway used when none is configured
	DefaultIPFSURL = "https://gateway.pinata.cloud/ipfs"
	// DefaultRequestsPerMin matches the pinning service's free tier limit
	DefaultRequestsPerMin = 30

	defaultTimeout = 15 * time.Second
	maxBodySize    = 8 << 20
)

var contentHashPattern = regexp.MustCompile(`^[a-zA-Z0-9]+(/[a-zA-Z0-9._\-/]*)?$`)

// TokenListGateway fetches token lists over HTTP(S) and IPFS gateways.
// Every request passes one shared rate limiter.
type TokenListGateway struct {
	client  *fasthttp.Client
	ipfsURL string
	limiter *rate.Limiter
	timeout time.Duration
	log     *slog.Logger
}

// NewTokenListGateway creates a new token list gateway
func NewTokenListGateway(cfg *config.RuntimeConfig, log *slog.Logger) *TokenListGateway {
	gw := cfg.Gateway

	perMin := gw.RequestsPerMin
	if perMin <= 0 {
		perMin = DefaultRequestsPerMin
	}
	ipfsURL := strings.TrimRight(gw.IPFSURL, "/")
	if ipfsURL == "" {
		ipfsURL = DefaultIPFSURL
	}
	timeout := gw.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &TokenListGateway{
		client: &fasthttp.Client{
			Name:                "dexgate",
			MaxResponseBodySize: maxBodySize,
		},
		ipfsURL: ipfsURL,
		// Convert requests per minute to rate.Limit (requests per second)
		limiter: rate.NewLimiter(rate.Limit(float64(perMin)/60.0), 1),
		timeout: timeout,
		log:     log.With("component", "TokenListGateway"),
	}
}

// ResolveURL maps a token list reference to the URL it is fetched from.
// ipfs://<cid> and bare content hashes go through the IPFS gateway.
func (g *TokenListGateway) ResolveURL(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "http://"):
		return ref, nil
	case strings.HasPrefix(ref, "ipfs://"):
		ref = strings.TrimPrefix(strings.TrimPrefix(ref, "ipfs://"), "ipfs/")
	}

	if ref == "" || !contentHashPattern.MatchString(ref) {
		return "", fmt.Errorf("incorrect token list reference %q", ref)
	}
	return g.ipfsURL + "/" + ref, nil
}

// FetchTokenList downloads and decodes a token list
func (g *TokenListGateway) FetchTokenList(ctx context.Context, ref string) (*domain.TokenList, error) {
	url, err := g.ResolveURL(ref)
	if err != nil {
		return nil, err
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.Set(fasthttp.HeaderAcceptEncoding, "gzip")

	timeout := g.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}

	g.log.Debug("Fetching token list", "url", url, "timeout", timeout)

	if err := g.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.StatusCode() == fasthttp.StatusNotFound {
		return nil, fmt.Errorf("token list %s: %w", url, domain.ErrNotFound)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("token list %s returned status %d", url, resp.StatusCode())
	}

	body := resp.Body()
	if bytes.EqualFold(resp.Header.ContentEncoding(), []byte("gzip")) {
		if body, err = resp.BodyGunzip(); err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", url, err)
		}
	}

	var list domain.TokenList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse token list %s: %w", url, err)
	}
	if list.Tokens == nil {
		list.Tokens = []domain.Token{}
	}

	g.log.Debug("Fetched token list", "url", url, "name", list.Name, "tokens", len(list.Tokens))
	return &list, nil
}

// Ensure the gateway implements the interface
var _ usecase.TokenListSource = (*TokenListGateway)(nil)
