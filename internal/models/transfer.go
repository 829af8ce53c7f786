package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransferStatusCompleted = "completed"
	TransferStatusFailed    = "failed"

	// RecentTransfersLimit caps how many history rows are kept per session
	RecentTransfersLimit = 10
)

var (
	ErrInvalidTransferStatus = errors.New("invalid transfer status")
	ErrInvalidTransferAmount = errors.New("transfer amount must be positive")
	ErrSameProviderTransfer  = errors.New("from and to providers cannot be the same")
)

// Transfer records one executed money movement between provider accounts.
// It is a display-history row, not a settlement record: the actual money
// movement happens through the external payment API, and the ledger is the
// authoritative client-side balance view.
type Transfer struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	FromProvider string          `gorm:"type:varchar(64);not null;index:idx_transfer_from" json:"from_provider"`
	ToProvider   string          `gorm:"type:varchar(64);not null;index:idx_transfer_to" json:"to_provider"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Recipient    string          `gorm:"type:varchar(255)" json:"recipient,omitempty"`
	Message      string          `gorm:"type:text" json:"message,omitempty"`
	External     bool            `gorm:"not null;default:false" json:"external"`
	Status       string          `gorm:"type:varchar(20);not null;index:idx_transfer_status" json:"status"`
	CreatedAt    time.Time       `gorm:"not null;index:idx_transfer_created_at" json:"created_at"`
}

// BeforeCreate hook for Transfer
func (t *Transfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Status == "" {
		t.Status = TransferStatusCompleted
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return t.Validate()
}

// Validate validates the transfer fields
func (t *Transfer) Validate() error {
	if t.FromProvider == "" {
		return errors.New("from provider is required")
	}

	if t.ToProvider == "" {
		return errors.New("to provider is required")
	}

	if t.FromProvider == t.ToProvider {
		return ErrSameProviderTransfer
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransferAmount
	}

	if !IsValidTransferStatus(t.Status) {
		return ErrInvalidTransferStatus
	}

	return nil
}

// IsValidTransferStatus checks if the transfer status is valid
func IsValidTransferStatus(status string) bool {
	switch status {
	case TransferStatusCompleted, TransferStatusFailed:
		return true
	default:
		return false
	}
}

// TableName returns the table name for Transfer
func (t *Transfer) TableName() string {
	return "transfers"
}
