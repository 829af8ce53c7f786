package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"multibank/internal/database"
)

var ErrSettingNotFound = errors.New("setting not found")

// settingsRepository implements SettingsRepositoryInterface on the local
// sqlite store
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) SettingsRepositoryInterface {
	return &settingsRepository{
		db: db,
	}
}

// Get retrieves the value stored under key
func (r *settingsRepository) Get(key string) (string, error) {
	var entry database.SettingsEntry
	if err := r.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return entry.Value, nil
}

// Set stores value under key, overwriting any previous value
func (r *settingsRepository) Set(key, value string) error {
	entry := database.SettingsEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	if err := r.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key; deleting a missing key is not
// an error
func (r *settingsRepository) Delete(key string) error {
	if err := r.db.Where("key = ?", key).Delete(&database.SettingsEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}
