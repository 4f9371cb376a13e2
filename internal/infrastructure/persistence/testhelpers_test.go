package persistence

import (
	"testing"

	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/agro/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDatabase opens an in-memory SQLite database with the schema migrated
func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.DB.AutoMigrate(models.AllModels()...))

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
