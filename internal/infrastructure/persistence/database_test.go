package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDatabase creates a Database backed by a mocked postgres connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB, Driver: DriverPostgres}, mock, mockDB
}

func TestNewDatabase(t *testing.T) {
	t.Run("opens sqlite in memory", func(t *testing.T) {
		db, err := NewDatabase(&config.DatabaseConfig{Driver: DriverSQLite})
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, DriverSQLite, db.Driver)
		assert.NoError(t, db.Ping())

		stats, err := db.Stats()
		require.NoError(t, err)
		assert.Equal(t, 1, stats.MaxOpenConnections)
	})

	t.Run("rejects unknown drivers", func(t *testing.T) {
		_, err := NewDatabase(&config.DatabaseConfig{Driver: "oracle"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
	})
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	mock.ExpectPing()

	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Transaction(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "harvest_crops" WHERE harvest_id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := db.Transaction(func(tx *gorm.DB) error {
			return deleteStaleCrops(tx, uuid.New(), nil)
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock, mockDB := newMockDatabase(t)
		defer mockDB.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := db.Transaction(func(tx *gorm.DB) error {
			return assert.AnError
		})

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProducerRepository_ExistsByDocument_Query(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()
	repo := NewGormProducerRepository(db.DB)
	excludeID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "producers" WHERE document = \$1 AND id <> \$2`).
		WithArgs("52998224725", excludeID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByDocument(context.Background(), "52998224725", excludeID)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
