package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"multibank/internal/ledger"
	"multibank/internal/models"
	"multibank/internal/normalizer"
	"multibank/internal/providers"
)

// RefreshResult summarizes one aggregation pass
type RefreshResult struct {
	Accounts  int
	Providers int
	// Failed lists providers whose fetch failed or whose payload had no
	// recognizable shape; their accounts are simply absent from this pass.
	Failed []string
}

// aggregationService implements AggregationServiceInterface. It is the only
// writer of the ledger's bulk-load path; user-initiated operations go through
// the transfer service instead.
type aggregationService struct {
	gateway providers.GatewayInterface
	ledger  *ledger.Ledger
	metrics MetricsRecorderInterface
	logger  *slog.Logger

	mu       sync.RWMutex
	accounts []models.CanonicalAccount
}

// NewAggregationService creates an aggregation service
func NewAggregationService(
	gateway providers.GatewayInterface,
	ldg *ledger.Ledger,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AggregationServiceInterface {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &aggregationService{
		gateway: gateway,
		ledger:  ldg,
		metrics: metrics,
		logger:  logger,
	}
}

// Refresh fetches every provider concurrently, normalizes each payload
// independently and loads the merged balance map into the ledger in one
// synchronous step. One provider failing never aborts the pass; its accounts
// are reported in RefreshResult.Failed and dropped from this snapshot.
func (s *aggregationService) Refresh(ctx context.Context) (RefreshResult, error) {
	start := time.Now()
	providerIDs := s.gateway.Providers()
	sort.Strings(providerIDs)

	type providerAccounts struct {
		providerID string
		accounts   []models.CanonicalAccount
		failed     bool
	}

	results := make([]providerAccounts, len(providerIDs))
	g, gctx := errgroup.WithContext(ctx)

	for i, providerID := range providerIDs {
		i, providerID := i, providerID
		g.Go(func() error {
			payload, err := s.gateway.FetchCards(gctx, providerID)
			if err != nil {
				s.logger.Warn("provider fetch failed",
					"provider", providerID,
					"error", err.Error(),
				)
				results[i] = providerAccounts{providerID: providerID, failed: true}
				return nil
			}

			if normalizer.IsMalformed(payload) {
				s.metrics.IncrementCounter("normalizer.malformed", map[string]string{"provider": providerID})
				results[i] = providerAccounts{providerID: providerID, failed: true}
				return nil
			}

			accounts := normalizer.Normalize(payload, providerID)
			for range accounts {
				s.metrics.IncrementCounter("normalizer.accounts", map[string]string{"provider": providerID})
			}
			results[i] = providerAccounts{providerID: providerID, accounts: accounts}
			return nil
		})
	}

	// Workers never return errors; Wait only propagates context cancellation.
	if err := g.Wait(); err != nil {
		s.metrics.IncrementCounter("aggregation.refresh", map[string]string{"status": "canceled"})
		return RefreshResult{}, err
	}

	merged := make([]models.CanonicalAccount, 0)
	balances := make(map[string]decimal.Decimal)
	result := RefreshResult{Providers: len(providerIDs)}

	for _, pr := range results {
		if pr.failed {
			result.Failed = append(result.Failed, pr.providerID)
			continue
		}
		merged = append(merged, pr.accounts...)
		for _, account := range pr.accounts {
			// One funding account per provider today; the last record wins
			// if an integration ever returns several.
			balances[account.ProviderID] = account.Balance
		}
	}

	s.ledger.Load(balances)

	s.mu.Lock()
	s.accounts = merged
	s.mu.Unlock()

	result.Accounts = len(merged)

	total, _ := s.ledger.TotalBudget().Float64()
	s.metrics.RecordGauge("total_budget", total, nil)
	s.metrics.IncrementCounter("aggregation.refresh", map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime("aggregation.refresh", time.Since(start))

	s.logger.Info("aggregation refresh completed",
		"providers", result.Providers,
		"accounts", result.Accounts,
		"failed", result.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

// Accounts returns the canonical accounts from the latest refresh
func (s *aggregationService) Accounts() []models.CanonicalAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]models.CanonicalAccount, len(s.accounts))
	copy(accounts, s.accounts)
	return accounts
}
