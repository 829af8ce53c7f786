package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// currencySymbols maps ISO-like currency codes to their display suffix.
// Unknown codes fall back to the code itself.
var currencySymbols = map[string]string{
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
}

var rubPrinter = message.NewPrinter(language.Russian)

// TotalBudget sums all tracked balances. It recomputes on every call under
// the read lock, so the result always agrees with the latest snapshot; the
// sum is never cached across a mutation.
func (l *Ledger) TotalBudget() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, balance := range l.balances {
		total = total.Add(balance)
	}
	return total
}

// FormattedBalance returns the provider's balance formatted for display
func (l *Ledger) FormattedBalance(providerID string) (string, error) {
	balance, err := l.Balance(providerID)
	if err != nil {
		return "", err
	}
	return FormatAmount(balance, "RUB"), nil
}

// FormattedTotal returns the total budget formatted for display
func (l *Ledger) FormattedTotal() string {
	return FormatAmount(l.TotalBudget(), "RUB")
}

// FormatAmount renders a decimal amount with ru-RU digit grouping, two
// decimal places and a currency suffix, matching the Mini-App's
// toLocaleString("ru-RU") output.
func FormatAmount(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = currency
	}

	f, _ := amount.Round(2).Float64()
	return rubPrinter.Sprintf("%v %s",
		number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)),
		symbol,
	)
}
