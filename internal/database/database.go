package database

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"multibank/internal/config"
	"multibank/internal/models"
)

// DB wraps the gorm handle for the local sqlite store. The store is the Go
// stand-in for the Mini-App's browser storage: transfer history and
// user-configured settings only, never upstream ledger data.
type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// New opens the local store and configures the connection
func New(cfg *config.DatabaseConfig) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	// sqlite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent handlers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

// AutoMigrate creates the local store schema
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.Transfer{},
		&SettingsEntry{},
	)
}

// Close closes the underlying connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck pings the store
func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// SettingsEntry is one persisted key-value pair. Values are opaque JSON
// blobs, mirroring localStorage get/set semantics.
type SettingsEntry struct {
	Key       string    `gorm:"type:varchar(255);primary_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName returns the table name for SettingsEntry
func (SettingsEntry) TableName() string {
	return "settings"
}
