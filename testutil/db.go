// Package testutil provides database and configuration fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"musicweb-api/config"
	"musicweb-api/logging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite database with the schema and role grants in place.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	logging.Init(logging.Config{Level: "disabled"})

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), config.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	require.NoError(t, config.SeedRolePermissions(context.Background(), db))
	return db
}

// TestConfig returns a configuration suitable for in-process router tests.
func TestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: "test"},
		Database: config.DatabaseConfig{
			Host: "localhost",
			Name: "musicweb_test",
		},
		JWT: config.JWTConfig{
			Secret:             "test-secret-0123456789abcdef",
			Issuer:             "musicweb-api-test",
			Expiration:         time.Hour,
			RegisterExpiration: 24 * time.Hour,
		},
		Security: config.SecurityConfig{
			CORSOrigins:     []string{"http://localhost:3000"},
			LoginRateLimit:  1000,
			LoginRateWindow: time.Minute,
			BcryptCost:      bcrypt.MinCost,
		},
		Logging: config.LoggingConfig{Level: "disabled", Format: "json"},
	}
}
