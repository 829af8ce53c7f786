package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"multibank/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=service_mocks/service_mocks.go -package=service_mocks

// AggregationServiceInterface refreshes the ledger from the upstream banks
type AggregationServiceInterface interface {
	Refresh(ctx context.Context) (RefreshResult, error)
	Accounts() []models.CanonicalAccount
}

// TransferServiceInterface executes user-initiated money movements against
// the ledger and keeps the display history
type TransferServiceInterface interface {
	Transfer(fromProvider, toProvider string, amount decimal.Decimal, recipient, message string) (*models.Transfer, error)
	RecentTransfers() ([]models.Transfer, error)
}

// AutopayServiceInterface manages user-configured auto-transfer rules
type AutopayServiceInterface interface {
	Rules() ([]models.AutoTransferRule, error)
	SaveRule(rule *models.AutoTransferRule) error
	DeleteRule(id string) error
	RunDue(now time.Time) (int, error)
}

// SessionServiceInterface is the Mini-App password gate
type SessionServiceInterface interface {
	Authenticate(password string) (string, time.Time, error)
	ValidateToken(tokenString string) error
}

// MetricsRecorderInterface abstracts metric collection so services stay
// testable without a registry
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
