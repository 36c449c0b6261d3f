package config

import (
	"context"
	"fmt"
	"time"

	"musicweb-api/logging"
	"musicweb-api/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// GormConfig is shared by the postgres and test databases.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logging.NewGormLogger(200 * time.Millisecond),
	}
}

func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Music{},
		&models.Review{},
		&models.RolePermission{},
		&models.UserPermission{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// SeedRolePermissions inserts the default role grants. Existing rows are kept.
func SeedRolePermissions(ctx context.Context, db *gorm.DB) error {
	rows := make([]models.RolePermission, 0)
	for _, role := range []models.UserRole{models.RoleEditor, models.RoleUser} {
		for _, perm := range models.DefaultRolePermissions[role] {
			rows = append(rows, models.RolePermission{Role: role, PermissionName: perm})
		}
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to seed role permissions: %w", err)
	}
	return nil
}
