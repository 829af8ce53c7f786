// Package providers implements the consumer-side contract with the upstream
// partner bank APIs. The gateway fetches raw card payloads; it never
// interprets their shape, that is the normalizer's job.
package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

var (
	ErrUnknownProvider = errors.New("unknown bank provider")
	ErrUnavailable     = errors.New("provider is unavailable")
)

// tokenExpiryMargin is subtracted from the reported token lifetime so a token
// is never used within a minute of its upstream expiry.
const tokenExpiryMargin = 60 * time.Second

// GatewayInterface is the provider gateway contract consumed by services
type GatewayInterface interface {
	FetchCards(ctx context.Context, providerID string) (any, error)
	Providers() []string
}

type cachedToken struct {
	value     string
	expiresAt time.Time
}

// Gateway talks to the configured upstream banks over HTTP. Each provider
// gets its own circuit breaker and bank-token cache.
type Gateway struct {
	baseURLs map[string]string
	clientID string
	secret   string
	client   *http.Client
	logger   *slog.Logger

	mu       sync.Mutex
	tokens   map[string]cachedToken
	breakers map[string]*CircuitBreaker
}

// NewGateway creates a gateway for the given provider base URLs
func NewGateway(baseURLs map[string]string, clientID, secret string, timeout time.Duration, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}

	breakers := make(map[string]*CircuitBreaker, len(baseURLs))
	for provider := range baseURLs {
		breakers[provider] = NewCircuitBreaker(DefaultCircuitBreakerConfig())
	}

	return &Gateway{
		baseURLs: baseURLs,
		clientID: clientID,
		secret:   secret,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
		tokens:   make(map[string]cachedToken),
		breakers: breakers,
	}
}

// Providers returns the configured provider IDs
func (g *Gateway) Providers() []string {
	providers := make([]string, 0, len(g.baseURLs))
	for provider := range g.baseURLs {
		providers = append(providers, provider)
	}
	return providers
}

// FetchCards retrieves the raw card payload for one provider. The decoded
// JSON is returned as-is; shape normalization happens downstream.
func (g *Gateway) FetchCards(ctx context.Context, providerID string) (any, error) {
	baseURL, ok := g.baseURLs[providerID]
	if !ok {
		return nil, ErrUnknownProvider
	}

	breaker := g.breakers[providerID]
	if breaker.IsOpen() {
		return nil, fmt.Errorf("%w: circuit breaker open for %s", ErrUnavailable, providerID)
	}

	token, err := g.bankToken(ctx, providerID, baseURL)
	if err != nil {
		breaker.RecordFailure()
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/cards", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Requesting-Bank", g.clientID)

	resp, err := g.client.Do(req)
	if err != nil {
		breaker.RecordFailure()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, providerID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		breaker.RecordFailure()
		return nil, fmt.Errorf("%w: %s returned status %d", ErrUnavailable, providerID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		breaker.RecordFailure()
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, providerID, err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		// Not a transport failure: the provider answered, just not with
		// JSON. The normalizer will classify the nil payload as malformed.
		breaker.RecordSuccess()
		g.logger.Warn("provider returned non-JSON payload",
			"provider", providerID,
			"status", resp.StatusCode,
		)
		return nil, nil
	}

	breaker.RecordSuccess()
	return payload, nil
}

// bankToken returns a cached access token for the provider, refreshing it
// through the auth endpoint when missing or within the expiry margin.
func (g *Gateway) bankToken(ctx context.Context, providerID, baseURL string) (string, error) {
	g.mu.Lock()
	cached, ok := g.tokens[providerID]
	g.mu.Unlock()

	if ok && time.Now().Before(cached.expiresAt) {
		return cached.value, nil
	}

	params := url.Values{}
	params.Set("client_id", g.clientID)
	params.Set("client_secret", g.secret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		baseURL+"/auth/bank-token?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request to %s failed: %v", ErrUnavailable, providerID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s token endpoint returned status %d", ErrUnavailable, providerID, resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%w: %s token response: %v", ErrUnavailable, providerID, err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("%w: %s returned an empty token", ErrUnavailable, providerID)
	}

	if tokenResp.ExpiresIn == 0 {
		tokenResp.ExpiresIn = 3600
	}

	g.mu.Lock()
	g.tokens[providerID] = cachedToken{
		value:     tokenResp.AccessToken,
		expiresAt: time.Now().Add(time.Duration(tokenResp.ExpiresIn)*time.Second - tokenExpiryMargin),
	}
	g.mu.Unlock()

	return tokenResp.AccessToken, nil
}
