package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"multibank/internal/dto"
	"multibank/internal/errors"
	"multibank/internal/models"
	"multibank/internal/services"

	"github.com/labstack/echo/v4"
)

// AutopayHandler handles the auto-transfer rule endpoints
type AutopayHandler struct {
	autopayService services.AutopayServiceInterface
}

// NewAutopayHandler creates a new autopay handler
func NewAutopayHandler(autopayService services.AutopayServiceInterface) *AutopayHandler {
	return &AutopayHandler{
		autopayService: autopayService,
	}
}

// ListRules returns all configured auto-transfer rules
// @Summary List auto-transfer rules
// @Description Return every configured scheduled transfer rule
// @Tags Autopay
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.AutopayRuleListResponse "Configured rules"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_002"
// @Router /api/autopay [get]
func (h *AutopayHandler) ListRules(c echo.Context) error {
	rules, err := h.autopayService.Rules()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AutopayRuleListResponse{
		Rules: rules,
		Total: len(rules),
	})
}

// SaveRule creates or updates an auto-transfer rule
// @Summary Save an auto-transfer rule
// @Description Create a scheduled transfer rule, or update an existing one when an ID is supplied
// @Tags Autopay
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SaveAutopayRuleRequest true "Rule details"
// @Success 200 {object} dto.AutopayRuleResponse "Rule saved"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001 or AUTOPAY_002"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_002"
// @Router /api/autopay [post]
func (h *AutopayHandler) SaveRule(c echo.Context) error {
	var req dto.SaveAutopayRuleRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return SendError(c, errors.AutopayInvalidRule, errors.WithDetails("Invalid amount"))
	}

	rule := &models.AutoTransferRule{
		FromProvider: req.FromProvider,
		ToProvider:   req.ToProvider,
		Amount:       amount,
		Period:       req.Period,
		Enabled:      req.Enabled,
	}

	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return SendError(c, errors.AutopayInvalidRule, errors.WithDetails("Invalid rule ID"))
		}
		rule.ID = id
	}

	if err := rule.Validate(); err != nil {
		return SendError(c, errors.AutopayInvalidRule, errors.WithDetails(err.Error()))
	}

	if err := h.autopayService.SaveRule(rule); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AutopayRuleResponse{
		Rule:    rule,
		Message: "Auto-transfer rule saved",
	})
}

// DeleteRule removes an auto-transfer rule
// @Summary Delete an auto-transfer rule
// @Description Remove a scheduled transfer rule by ID
// @Tags Autopay
// @Security BearerAuth
// @Produce json
// @Param id path string true "Rule ID"
// @Success 200 {object} SuccessResponse{message=string} "Rule deleted"
// @Failure 401 {object} errors.ErrorResponse "Unauthorized - AUTH_002, AUTH_003 or AUTH_004"
// @Failure 404 {object} errors.ErrorResponse "Rule not found - AUTOPAY_001"
// @Failure 500 {object} errors.ErrorResponse "System error - SYSTEM_002"
// @Router /api/autopay/{id} [delete]
func (h *AutopayHandler) DeleteRule(c echo.Context) error {
	id := c.Param("id")

	if err := h.autopayService.DeleteRule(id); err != nil {
		if err == services.ErrRuleNotFound {
			return SendError(c, errors.AutopayRuleNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Auto-transfer rule deleted",
	})
}
