// Package ledger holds the authoritative client-side view of each linked
// account's balance. Balances are keyed by provider ID (each partner bank
// exposes exactly one funding account in this system) and are mutated only
// through the operations here, never by direct writes from consumers.
package ledger

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrUnknownAccount    = errors.New("account is not tracked by the ledger")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// TransferOutcome describes the effect a completed transfer had on the
// tracked balance sheet.
type TransferOutcome struct {
	FromBalance decimal.Decimal
	ToBalance   decimal.Decimal
	// External is true when the destination is not a tracked account: the
	// debit applied but no credit did, so the amount left the aggregated
	// balance sheet. ToBalance is zero in that case.
	External bool
}

// Ledger is a mutex-guarded snapshot of per-provider balances. The original
// runtime relied on a single-threaded event loop for atomicity; here every
// mutation holds the lock for its full duration, so no reader can observe a
// transfer with the debit applied but the credit missing.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]decimal.Decimal
	logger   *slog.Logger
}

// New creates an empty ledger
func New(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		balances: make(map[string]decimal.Decimal),
		logger:   logger,
	}
}

// Load replaces all tracked balances in one step. Used when a full
// aggregation pass has produced a fresh balance map.
func (l *Ledger) Load(balances map[string]decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances = make(map[string]decimal.Decimal, len(balances))
	for provider, balance := range balances {
		l.balances[provider] = balance
	}
}

// SetBalance sets or starts tracking a single provider balance
func (l *Ledger) SetBalance(providerID string, balance decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[providerID] = balance
}

// Balance returns the current balance for a provider
func (l *Ledger) Balance(providerID string) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balance, ok := l.balances[providerID]
	if !ok {
		return decimal.Zero, ErrUnknownAccount
	}
	return balance, nil
}

// Balances returns a copy of the current balance snapshot
func (l *Ledger) Balances() map[string]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := make(map[string]decimal.Decimal, len(l.balances))
	for provider, balance := range l.balances {
		snapshot[provider] = balance
	}
	return snapshot
}

// Tracks reports whether the provider is a tracked account
func (l *Ledger) Tracks(providerID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.balances[providerID]
	return ok
}

// Credit increases a tracked balance
func (l *Ledger) Credit(providerID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[providerID]
	if !ok {
		return decimal.Zero, ErrUnknownAccount
	}

	l.balances[providerID] = balance.Add(amount)
	return l.balances[providerID], nil
}

// Debit decreases a tracked balance; it never drives a balance negative
func (l *Ledger) Debit(providerID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[providerID]
	if !ok {
		return decimal.Zero, ErrUnknownAccount
	}

	if balance.LessThan(amount) {
		return decimal.Zero, ErrInsufficientFunds
	}

	l.balances[providerID] = balance.Sub(amount)
	return l.balances[providerID], nil
}

// Transfer moves amount from one provider account to another, all or
// nothing. The source must be tracked and funded. The destination is
// credited only when it is itself a tracked account: the ledger covers only
// the current user's linked accounts, so a transfer to an external
// destination reduces the tracked total while an internal transfer leaves it
// unchanged.
func (l *Ledger) Transfer(fromProviderID, toProviderID string, amount decimal.Decimal) (TransferOutcome, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return TransferOutcome{}, ErrInvalidAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	fromBalance, ok := l.balances[fromProviderID]
	if !ok {
		return TransferOutcome{}, ErrUnknownAccount
	}

	if fromBalance.LessThan(amount) {
		return TransferOutcome{}, ErrInsufficientFunds
	}

	l.balances[fromProviderID] = fromBalance.Sub(amount)
	outcome := TransferOutcome{FromBalance: l.balances[fromProviderID]}

	if toBalance, tracked := l.balances[toProviderID]; tracked {
		l.balances[toProviderID] = toBalance.Add(amount)
		outcome.ToBalance = l.balances[toProviderID]
	} else {
		outcome.External = true
	}

	l.logger.Info("transfer applied",
		"from", fromProviderID,
		"to", toProviderID,
		"amount", amount.String(),
		"external", outcome.External,
	)

	return outcome, nil
}
