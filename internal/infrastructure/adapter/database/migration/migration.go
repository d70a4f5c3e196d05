package migration

import (
	"context"
	"errors"
	"time"

	coreport "github.com/chiahui-lin/savings365/internal/domain/port/core"
	"github.com/chiahui-lin/savings365/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// CurrentSchemaVersion represents the current database schema version
const CurrentSchemaVersion = "1.0.0"

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll performs all migrations
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		m.logger.Error("Failed to create migration version table", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	currentVersion, err := m.GetCurrentVersion(context.Background())
	if err != nil {
		m.logger.Error("Failed to check current schema version", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.autoMigrateModels(); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.setVersion(context.Background(), CurrentSchemaVersion, "Full schema migration"); err != nil {
		m.logger.Error("Failed to update schema version", map[string]any{
			"error":   err.Error(),
			"version": CurrentSchemaVersion,
		})
		return err
	}

	m.logger.Info("Database migrations completed successfully", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// GetCurrentVersion gets the current migration version
func (m *MigrationManager) GetCurrentVersion(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	var version model.MigrationVersion
	result := m.db.WithContext(ctx).Order("applied_at desc").First(&version)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", result.Error
	}

	return version.Version, nil
}

// setVersion records a new migration version
func (m *MigrationManager) setVersion(ctx context.Context, version string, details string) error {
	var appliedAt time.Time
	if m.timeProvider != nil {
		appliedAt = m.timeProvider.Now()
	} else {
		appliedAt = time.Now()
	}

	migrationVersion := model.MigrationVersion{
		Version:   version,
		AppliedAt: appliedAt,
		Details:   details,
	}

	result := m.db.WithContext(ctx).Create(&migrationVersion)
	return result.Error
}

// autoMigrateModels auto-migrates database models
func (m *MigrationManager) autoMigrateModels() error {
	m.logger.Info("Auto-migrating database models", nil)

	return m.db.AutoMigrate(
		&model.Group{},
		&model.User{},
		&model.SavingRecord{},
		&model.Session{},
	)
}

// createIndexes creates the indexes the read paths and uniqueness rules
// depend on. AutoMigrate already builds most of them; these statements make
// the contract explicit and repair schemas created by older versions.
func (m *MigrationManager) createIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	// One ledger row per user and day
	if err := m.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_day ON saving_records (user_id, day_number)").Error; err != nil {
		return err
	}

	// Usernames and invite codes are unique
	if err := m.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username)").Error; err != nil {
		return err
	}
	if err := m.db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_groups_code ON groups (code)").Error; err != nil {
		return err
	}

	// Leaderboard loads members by group
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_users_group_code ON users (group_code)").Error; err != nil {
		return err
	}

	// Session cleanup scans by expiry
	if err := m.db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at)").Error; err != nil {
		return err
	}

	return nil
}

// PurgeExpiredSessions deletes session rows that expired before now.
// Run at startup so abandoned sessions do not accumulate.
func (m *MigrationManager) PurgeExpiredSessions(ctx context.Context) error {
	now := time.Now()
	if m.timeProvider != nil {
		now = m.timeProvider.Now()
	}

	result := m.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.Session{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		m.logger.Info("Purged expired sessions", map[string]any{
			"count": result.RowsAffected,
		})
	}
	return nil
}
