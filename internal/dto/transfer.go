package dto

import (
	"multibank/internal/models"
)

// Transfer Request DTOs

// TransferRequest is the payload for executing a transfer between banks.
// Amounts travel as strings so the client never round-trips money through
// floating point.
type TransferRequest struct {
	FromBank  string `json:"from_bank" validate:"required,provider_id"`
	ToBank    string `json:"to_bank" validate:"required,provider_id"`
	Amount    string `json:"amount" validate:"required,transfer_amount"`
	Recipient string `json:"recipient,omitempty" validate:"max=255"`
	Message   string `json:"message,omitempty" validate:"max=1024"`
}

// Transfer Response DTOs

// TransferResponse is returned after a completed transfer
type TransferResponse struct {
	Transfer       *models.Transfer `json:"transfer"`
	FormattedTotal string           `json:"formatted_total"`
	Message        string           `json:"message"`
}

// TransferListResponse lists the recent transfer history
type TransferListResponse struct {
	Transfers []models.Transfer `json:"transfers"`
	Total     int               `json:"total"`
}
