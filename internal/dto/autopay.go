package dto

import (
	"multibank/internal/models"
)

// Autopay Request DTOs

// SaveAutopayRuleRequest creates or updates an auto-transfer rule
type SaveAutopayRuleRequest struct {
	ID           string `json:"id,omitempty" validate:"omitempty,uuid"`
	FromProvider string `json:"from_provider" validate:"required,provider_id"`
	ToProvider   string `json:"to_provider" validate:"required,provider_id"`
	Amount       string `json:"amount" validate:"required,transfer_amount"`
	Period       string `json:"period" validate:"required,autopay_period"`
	Enabled      bool   `json:"enabled"`
}

// Autopay Response DTOs

// AutopayRuleResponse is returned after saving a rule
type AutopayRuleResponse struct {
	Rule    *models.AutoTransferRule `json:"rule"`
	Message string                   `json:"message"`
}

// AutopayRuleListResponse lists the configured rules
type AutopayRuleListResponse struct {
	Rules []models.AutoTransferRule `json:"rules"`
	Total int                       `json:"total"`
}
