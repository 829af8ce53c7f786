package repositories

import (
	"multibank/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=repository_mocks/mocks.go -package=repository_mocks

// TransferRepositoryInterface persists the recent-transfer display history
type TransferRepositoryInterface interface {
	Create(transfer *models.Transfer) error
	FindRecent(limit int) ([]models.Transfer, error)
	Count() (int64, error)
	Clear() error
}

// SettingsRepositoryInterface is the key-value store for user-configured
// items, with localStorage-like get/set semantics
type SettingsRepositoryInterface interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
