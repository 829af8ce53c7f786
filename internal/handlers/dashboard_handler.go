package handlers

import (
	"net/http"

	"multibank/internal/dto"
	"multibank/internal/errors"
	"multibank/internal/ledger"
	"multibank/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated account views the Mini-App renders
type DashboardHandler struct {
	aggregation services.AggregationServiceInterface
	ledger      *ledger.Ledger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(aggregation services.AggregationServiceInterface, ldg *ledger.Ledger) *DashboardHandler {
	return &DashboardHandler{
		aggregation: aggregation,
		ledger:      ldg,
	}
}

// ListAccounts returns the canonical accounts from the latest refresh
// @Summary List aggregated accounts
// @Description Return every linked account from the latest aggregation pass with display formatting
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AccountListResponse "Aggregated accounts"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Router /api/accounts [get]
func (h *DashboardHandler) ListAccounts(c echo.Context) error {
	accounts := h.aggregation.Accounts()

	views := make([]dto.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, dto.AccountView{
			CanonicalAccount: account,
			FormattedBalance: ledger.FormatAmount(account.Balance, account.Currency),
		})
	}

	total := h.ledger.TotalBudget()
	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts:       views,
		TotalBudget:    total.String(),
		FormattedTotal: h.ledger.FormattedTotal(),
	})
}

// TotalBudget returns the sum of all tracked balances
// @Summary Total budget
// @Description Return the aggregate balance across all linked accounts, recomputed from the current ledger snapshot
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.TotalBudgetResponse "Aggregate balance"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Router /api/accounts/total [get]
func (h *DashboardHandler) TotalBudget(c echo.Context) error {
	total := h.ledger.TotalBudget()
	return c.JSON(http.StatusOK, dto.TotalBudgetResponse{
		TotalBudget:    total.String(),
		FormattedTotal: h.ledger.FormattedTotal(),
	})
}

// AvailableBalance returns the current balance for one provider
// @Summary Per-provider balance
// @Description Return the tracked balance for a single linked bank
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param provider path string true "Provider identifier"
// @Success 200 {object} dto.BalanceResponse "Provider balance"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 404 {object} errors.ErrorResponse "Untracked provider - LEDGER_001"
// @Router /api/available_balance/{provider} [get]
func (h *DashboardHandler) AvailableBalance(c echo.Context) error {
	providerID := c.Param("provider")

	balance, err := h.ledger.Balance(providerID)
	if err != nil {
		return SendError(c, errors.LedgerUnknownAccount)
	}

	formatted, err := h.ledger.FormattedBalance(providerID)
	if err != nil {
		return SendError(c, errors.LedgerUnknownAccount)
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		ProviderID:       providerID,
		Balance:          balance.String(),
		FormattedBalance: formatted,
	})
}

// Refresh runs a full aggregation pass against the upstream banks
// @Summary Refresh aggregated accounts
// @Description Fetch every linked bank, normalize the payloads and replace the ledger snapshot
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.RefreshResponse "Refresh summary"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /api/refresh [post]
func (h *DashboardHandler) Refresh(c echo.Context) error {
	result, err := h.aggregation.Refresh(c.Request().Context())
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RefreshResponse{
		Accounts:  result.Accounts,
		Providers: result.Providers,
		Failed:    result.Failed,
		Message:   "Accounts refreshed",
	})
}
