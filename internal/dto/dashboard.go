package dto

import (
	"multibank/internal/models"
)

// Dashboard Response DTOs

// AccountView is one canonical account enriched with display formatting
type AccountView struct {
	models.CanonicalAccount
	FormattedBalance string `json:"formatted_balance"`
}

// AccountListResponse lists the aggregated accounts from the latest refresh
type AccountListResponse struct {
	Accounts       []AccountView `json:"accounts"`
	TotalBudget    string        `json:"total_budget"`
	FormattedTotal string        `json:"formatted_total"`
}

// BalanceResponse is the per-provider balance view
type BalanceResponse struct {
	ProviderID       string `json:"provider_id"`
	Balance          string `json:"balance"`
	FormattedBalance string `json:"formatted_balance"`
}

// TotalBudgetResponse is the aggregate shown on the dashboard header
type TotalBudgetResponse struct {
	TotalBudget    string `json:"total_budget"`
	FormattedTotal string `json:"formatted_total"`
}

// RefreshResponse summarizes an aggregation pass
type RefreshResponse struct {
	Accounts  int      `json:"accounts"`
	Providers int      `json:"providers"`
	Failed    []string `json:"failed,omitempty"`
	Message   string   `json:"message"`
}
