package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vendorapp/internal/models"
)

// OpenDatabase opens the session database for driver ("sqlite" or "postgres")
// and migrates the session table.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported session database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s session database: %w", driver, err)
	}
	if err := db.AutoMigrate(&models.SessionEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session database: %w", err)
	}
	return db, nil
}

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new instance of GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{
		db: db,
	}
}

// Get retrieves the value stored under key.
func (r *GORMSessionRepository) Get(ctx context.Context, key string) (string, error) {
	var entry models.SessionEntry
	if err := r.db.WithContext(ctx).First(&entry, "session_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get session key %s: %w", key, err)
	}
	return entry.Value, nil
}

// Set inserts or replaces the value under key.
func (r *GORMSessionRepository) Set(ctx context.Context, key, value string) error {
	entry := models.SessionEntry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to set session key %s: %w", key, err)
	}
	return nil
}

// Delete removes the given keys; missing keys are ignored.
func (r *GORMSessionRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("session_key IN ?", keys).Delete(&models.SessionEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete session keys %v: %w", keys, err)
	}
	return nil
}

// Clear removes every stored key.
func (r *GORMSessionRepository) Clear(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.SessionEntry{}).Error; err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
