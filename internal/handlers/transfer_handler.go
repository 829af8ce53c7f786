package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"multibank/internal/dto"
	"multibank/internal/errors"
	"multibank/internal/ledger"
	"multibank/internal/services"

	"github.com/labstack/echo/v4"
)

// TransferHandler handles transfer execution and history endpoints
type TransferHandler struct {
	transferService services.TransferServiceInterface
	ledger          *ledger.Ledger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService services.TransferServiceInterface, ldg *ledger.Ledger) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		ledger:          ldg,
	}
}

// CreateTransfer executes a transfer between two banks
// @Summary Execute a transfer
// @Description Move money from one linked bank to another, or to an external destination
// @Tags Transfers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse "Transfer completed"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 or TRANSFER_001"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 404 {object} errors.ErrorResponse "Untracked source account - LEDGER_001"
// @Failure 422 {object} errors.ErrorResponse "Insufficient funds - LEDGER_003"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_001"
// @Router /api/transfers [post]
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	var req dto.TransferRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.TransferInvalidAmount)
	}

	transfer, err := h.transferService.Transfer(req.FromBank, req.ToBank, amount, req.Recipient, req.Message)
	if err != nil {
		switch err {
		case services.ErrInvalidAmount:
			return SendError(c, errors.TransferInvalidAmount)
		case services.ErrSameAccountTransfer:
			return SendError(c, errors.TransferSameAccount)
		case services.ErrUnknownAccount:
			return SendError(c, errors.LedgerUnknownAccount)
		case services.ErrInsufficientFunds:
			return SendError(c, errors.LedgerInsufficientFunds)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.TransferResponse{
		Transfer:       transfer,
		FormattedTotal: h.ledger.FormattedTotal(),
		Message:        "Transfer completed",
	})
}

// ListRecentTransfers returns the display history, newest first
// @Summary Recent transfers
// @Description Return the last transfers executed from this dashboard
// @Tags Transfers
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.TransferListResponse "Recent transfer history"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_002"
// @Router /api/transfers/recent [get]
func (h *TransferHandler) ListRecentTransfers(c echo.Context) error {
	transfers, err := h.transferService.RecentTransfers()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TransferListResponse{
		Transfers: transfers,
		Total:     len(transfers),
	})
}
