package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Known upstream bank providers. The aggregator treats provider IDs as opaque
// strings, so new partner banks do not require code changes here; these
// constants only exist for the built-in integrations.
const (
	ProviderVBank = "vbank"
	ProviderABank = "abank"
	ProviderSBank = "sbank"

	DefaultCurrency = "RUB"
)

var (
	ErrMissingProviderID = errors.New("provider ID is required")
	ErrMissingAccountID  = errors.New("account ID is required")
	ErrUnmaskedNumber    = errors.New("masked number carries too many real digits")
)

// CanonicalAccount is the unified representation of one provider's card or
// funding account. Instances are created fresh on every normalization pass and
// carry no identity across refreshes; the ledger is the only session-long
// stateful component.
//
// Limitation: the system currently assumes exactly one funding account per
// provider, so ProviderID doubles as the ledger key. Model a provider→account
// list before lifting that assumption.
type CanonicalAccount struct {
	ProviderID        string          `json:"provider_id"`
	AccountID         string          `json:"account_id"`
	MaskedNumber      string          `json:"masked_number"`
	Balance           decimal.Decimal `json:"balance"`
	Currency          string          `json:"currency"`
	HolderDisplayName string          `json:"holder_display_name,omitempty"`
}

// Validate checks the invariants downstream code relies on
func (a *CanonicalAccount) Validate() error {
	if a.ProviderID == "" {
		return ErrMissingProviderID
	}

	if a.AccountID == "" {
		return ErrMissingAccountID
	}

	if countDigits(a.MaskedNumber) > 8 {
		return ErrUnmaskedNumber
	}

	return nil
}

// IsMasked reports whether the number already contains mask placeholders
func (a *CanonicalAccount) IsMasked() bool {
	return strings.ContainsAny(a.MaskedNumber, "*•")
}

// LastFour returns the trailing digits of the masked number for compact display
func (a *CanonicalAccount) LastFour() string {
	digits := make([]byte, 0, len(a.MaskedNumber))
	for i := 0; i < len(a.MaskedNumber); i++ {
		if a.MaskedNumber[i] >= '0' && a.MaskedNumber[i] <= '9' {
			digits = append(digits, a.MaskedNumber[i])
		}
	}
	if len(digits) < 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
