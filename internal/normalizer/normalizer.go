// Package normalizer converts the heterogeneous payloads returned by the
// upstream bank integrations into the canonical account model. Upstream
// response shapes are not contractually fixed: the same logical list of cards
// may arrive wrapped as data.data.cards, data.cards, cards, an accounts
// envelope, or a bare JSON array, depending on which proxy layer produced it.
package normalizer

import (
	"encoding/json"
	"log/slog"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"multibank/internal/models"
)

// extractionPaths is the ordered list of envelope shapes tried against a
// payload. Order is a precedence policy: deeper envelopes are produced by the
// aggregation proxy and are more authoritative than top-level keys when a
// mixed payload carries both.
var extractionPaths = [][]string{
	{"data", "data", "cards"},
	{"data", "cards"},
	{"cards"},
	{"data", "accounts"},
	{"accounts"},
	{}, // bare array
}

// accountIDKeys, numberKeys and balanceKeys list the field aliases seen
// across the three bank integrations, most common first.
var (
	accountIDKeys = []string{"id", "card_id", "account_id"}
	numberKeys    = []string{"card_number", "masked_number", "number", "pan"}
	balanceKeys   = []string{"balance", "available_balance", "amount"}
	holderKeys    = []string{"holder_name", "cardholder", "owner"}
)

// Normalize extracts the canonical account list from one provider payload.
// It never returns nil and never fails the whole batch: records that cannot
// be parsed are skipped individually, and a payload with no recognizable
// array shape yields an empty list.
func Normalize(payload any, providerID string) []models.CanonicalAccount {
	accounts := make([]models.CanonicalAccount, 0)

	raw, ok := extractArray(payload)
	if !ok {
		slog.Warn("no recognizable account array in provider payload",
			"provider", providerID,
		)
		return accounts
	}

	for i, item := range raw {
		account, err := parseRecord(item, providerID)
		if err != nil {
			slog.Warn("skipping malformed account record",
				"provider", providerID,
				"index", i,
				"error", err.Error(),
			)
			continue
		}
		accounts = append(accounts, account)
	}

	return accounts
}

// IsMalformed reports whether a payload has no recognizable array shape at
// all. Consumers use this to distinguish "provider returned zero accounts"
// from "provider response could not be understood".
func IsMalformed(payload any) bool {
	_, ok := extractArray(payload)
	return !ok
}

// extractArray walks the extraction paths in precedence order and returns the
// first value that is an actual array.
func extractArray(payload any) ([]any, bool) {
	for _, path := range extractionPaths {
		if arr, ok := lookupArray(payload, path); ok {
			return arr, true
		}
	}
	return nil, false
}

// lookupArray descends through the given keys and reports whether the value
// at the end of the path is an array. A missing key or a non-object midway
// means this path does not apply.
func lookupArray(v any, path []string) ([]any, bool) {
	for _, key := range path {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	arr, ok := v.([]any)
	return arr, ok
}

func parseRecord(item any, providerID string) (models.CanonicalAccount, error) {
	record, ok := item.(map[string]any)
	if !ok {
		return models.CanonicalAccount{}, errNotAnObject
	}

	account := models.CanonicalAccount{
		ProviderID: providerID,
		AccountID:  firstString(record, accountIDKeys),
		Currency:   models.DefaultCurrency,
	}

	if number := firstString(record, numberKeys); number != "" {
		account.MaskedNumber = MaskNumber(number)
		if account.AccountID == "" {
			account.AccountID = account.MaskedNumber
		}
	}

	if account.AccountID == "" {
		return models.CanonicalAccount{}, errNoIdentity
	}

	balance, err := parseBalance(record)
	if err != nil {
		return models.CanonicalAccount{}, err
	}
	account.Balance = balance

	if currency, ok := record["currency"].(string); ok && currency != "" {
		account.Currency = strings.ToUpper(currency)
	}

	account.HolderDisplayName = firstString(record, holderKeys)

	if err := account.Validate(); err != nil {
		return models.CanonicalAccount{}, err
	}

	return account, nil
}

// parseBalance accepts the balance as a JSON number, a json.Number, or a
// numeric string; a record with no parseable balance at any alias is treated
// as zero rather than dropped, matching the pages' `parseFloat(... || 0)`
// behavior.
func parseBalance(record map[string]any) (decimal.Decimal, error) {
	for _, key := range balanceKeys {
		v, ok := record[key]
		if !ok || v == nil {
			continue
		}

		switch b := v.(type) {
		case float64:
			return decimalFromFloat(b)
		case json.Number:
			return decimal.NewFromString(b.String())
		case string:
			d, err := decimal.NewFromString(strings.TrimSpace(b))
			if err != nil {
				return decimal.Zero, errUnparsableBalance
			}
			return d, nil
		default:
			return decimal.Zero, errUnparsableBalance
		}
	}
	return decimal.Zero, nil
}

// decimalFromFloat rejects the non-finite values a lenient decoder or an
// upstream bug could produce; decimal.NewFromFloat panics on them.
func decimalFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, errUnparsableBalance
	}
	return decimal.NewFromFloat(f), nil
}

func firstString(record map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := record[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
