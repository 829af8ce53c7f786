package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"multibank/internal/models"
)

var ErrTransferNotFound = errors.New("transfer not found")

// transferRepository implements TransferRepositoryInterface
type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer history repository
func NewTransferRepository(db *gorm.DB) TransferRepositoryInterface {
	return &transferRepository{
		db: db,
	}
}

// Create stores a new transfer and trims the history to the retention limit,
// oldest rows first. The Mini-App keeps only the ten most recent transfers.
func (r *transferRepository) Create(transfer *models.Transfer) error {
	if transfer == nil {
		return errors.New("transfer cannot be nil")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transfer).Error; err != nil {
			return fmt.Errorf("failed to create transfer: %w", err)
		}

		var count int64
		if err := tx.Model(&models.Transfer{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count transfers: %w", err)
		}

		if count <= models.RecentTransfersLimit {
			return nil
		}

		var stale []models.Transfer
		if err := tx.Order("created_at ASC, id ASC").
			Limit(int(count) - models.RecentTransfersLimit).
			Find(&stale).Error; err != nil {
			return fmt.Errorf("failed to find stale transfers: %w", err)
		}

		if err := tx.Delete(&stale).Error; err != nil {
			return fmt.Errorf("failed to trim transfer history: %w", err)
		}

		return nil
	})
}

// FindRecent retrieves the most recent transfers, newest first
func (r *transferRepository) FindRecent(limit int) ([]models.Transfer, error) {
	if limit <= 0 || limit > models.RecentTransfersLimit {
		limit = models.RecentTransfersLimit
	}

	var transfers []models.Transfer
	if err := r.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent transfers: %w", err)
	}

	return transfers, nil
}

// Count returns the number of stored transfers
func (r *transferRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transfer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count transfers: %w", err)
	}
	return count, nil
}

// Clear removes the whole history
func (r *transferRepository) Clear() error {
	if err := r.db.Where("1 = 1").Delete(&models.Transfer{}).Error; err != nil {
		return fmt.Errorf("failed to clear transfers: %w", err)
	}
	return nil
}
