package providers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type GatewayTestSuite struct {
	suite.Suite
}

func TestGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

// newBankServer fakes one upstream bank: a token endpoint and a cards
// endpoint guarded by the issued token.
func (s *GatewayTestSuite) newBankServer(tokenCalls *int64, cardsPayload string) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/bank-token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		atomic.AddInt64(tokenCalls, 1)

		if r.URL.Query().Get("client_id") == "" || r.URL.Query().Get("client_secret") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/cards", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("X-Requesting-Bank") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cardsPayload))
	})

	return httptest.NewServer(mux)
}

func (s *GatewayTestSuite) newGateway(baseURL string) *Gateway {
	return NewGateway(
		map[string]string{"vbank": baseURL},
		"partner-bank",
		"partner-secret",
		5*time.Second,
		slog.Default(),
	)
}

func (s *GatewayTestSuite) TestFetchCards() {
	var tokenCalls int64
	server := s.newBankServer(&tokenCalls, `{"data":{"cards":[{"id":"c1","balance":100}]}}`)
	defer server.Close()

	gateway := s.newGateway(server.URL)

	payload, err := gateway.FetchCards(context.Background(), "vbank")
	require.NoError(s.T(), err)
	require.NotNil(s.T(), payload)

	obj, ok := payload.(map[string]any)
	require.True(s.T(), ok)
	assert.Contains(s.T(), obj, "data")
}

func (s *GatewayTestSuite) TestFetchCards_TokenIsCached() {
	var tokenCalls int64
	server := s.newBankServer(&tokenCalls, `{"cards":[]}`)
	defer server.Close()

	gateway := s.newGateway(server.URL)

	for i := 0; i < 3; i++ {
		_, err := gateway.FetchCards(context.Background(), "vbank")
		require.NoError(s.T(), err)
	}

	assert.Equal(s.T(), int64(1), atomic.LoadInt64(&tokenCalls))
}

func (s *GatewayTestSuite) TestFetchCards_UnknownProvider() {
	gateway := s.newGateway("http://localhost:0")

	_, err := gateway.FetchCards(context.Background(), "nosuchbank")
	assert.ErrorIs(s.T(), err, ErrUnknownProvider)
}

func (s *GatewayTestSuite) TestFetchCards_NonJSONBodyIsNotATransportFailure() {
	var tokenCalls int64
	server := s.newBankServer(&tokenCalls, `<html>maintenance</html>`)
	defer server.Close()

	gateway := s.newGateway(server.URL)

	payload, err := gateway.FetchCards(context.Background(), "vbank")
	require.NoError(s.T(), err)
	assert.Nil(s.T(), payload)

	// The breaker stays closed: the provider answered
	assert.Equal(s.T(), StateClosed, gateway.breakers["vbank"].GetState())
}

func (s *GatewayTestSuite) TestFetchCards_UpstreamErrorsOpenBreaker() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	gateway := s.newGateway(server.URL)

	for i := 0; i < DefaultCircuitBreakerConfig().MaxFailures; i++ {
		_, err := gateway.FetchCards(context.Background(), "vbank")
		require.ErrorIs(s.T(), err, ErrUnavailable)
	}

	// Next call is rejected without touching the network
	server.Close()
	_, err := gateway.FetchCards(context.Background(), "vbank")
	assert.ErrorIs(s.T(), err, ErrUnavailable)
	assert.Equal(s.T(), StateOpen, gateway.breakers["vbank"].GetState())
}

func (s *GatewayTestSuite) TestProviders() {
	gateway := NewGateway(map[string]string{
		"vbank": "http://a",
		"abank": "http://b",
	}, "id", "secret", time.Second, nil)

	providers := gateway.Providers()
	assert.ElementsMatch(s.T(), []string{"vbank", "abank"}, providers)
}
