package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AutopayPeriodDaily   = "daily"
	AutopayPeriodWeekly  = "weekly"
	AutopayPeriodMonthly = "monthly"
)

var (
	ErrInvalidAutopayPeriod = errors.New("invalid auto-transfer period")
	ErrInvalidAutopayAmount = errors.New("auto-transfer amount must be positive")
)

// AutoTransferRule is a user-configured scheduled transfer between two
// provider accounts. Rules are persisted through the settings key-value
// store, the local-storage equivalent of the Mini-App.
type AutoTransferRule struct {
	ID           uuid.UUID       `json:"id"`
	FromProvider string          `json:"from_provider"`
	ToProvider   string          `json:"to_provider"`
	Amount       decimal.Decimal `json:"amount"`
	Period       string          `json:"period"`
	Enabled      bool            `json:"enabled"`
	NextRunAt    time.Time       `json:"next_run_at"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Validate validates the rule fields
func (r *AutoTransferRule) Validate() error {
	if r.FromProvider == "" {
		return errors.New("from provider is required")
	}

	if r.ToProvider == "" {
		return errors.New("to provider is required")
	}

	if r.FromProvider == r.ToProvider {
		return ErrSameProviderTransfer
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAutopayAmount
	}

	if !IsValidAutopayPeriod(r.Period) {
		return ErrInvalidAutopayPeriod
	}

	return nil
}

// IsDue reports whether the rule should run at the given time
func (r *AutoTransferRule) IsDue(now time.Time) bool {
	return r.Enabled && !r.NextRunAt.After(now)
}

// Advance moves NextRunAt forward by one period from the given time
func (r *AutoTransferRule) Advance(now time.Time) {
	switch r.Period {
	case AutopayPeriodDaily:
		r.NextRunAt = now.AddDate(0, 0, 1)
	case AutopayPeriodWeekly:
		r.NextRunAt = now.AddDate(0, 0, 7)
	case AutopayPeriodMonthly:
		r.NextRunAt = now.AddDate(0, 1, 0)
	}
}

// IsValidAutopayPeriod checks if the period is valid
func IsValidAutopayPeriod(period string) bool {
	switch period {
	case AutopayPeriodDaily, AutopayPeriodWeekly, AutopayPeriodMonthly:
		return true
	default:
		return false
	}
}
