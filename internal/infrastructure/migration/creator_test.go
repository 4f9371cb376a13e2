package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"create producers", "create_producers"},
		{"Add-Harvest-Index", "add_harvest_index"},
		{"add__crop__name", "add_crop_name"},
		{"Safras 2024", "safras_2024"},
		{"   spaces   ", "spaces"},
		{"special!@#$chars", "specialchars"},
		{"trailing_", "trailing"},
		{"_leading", "leading"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add crop index", "Index crop names for the dashboard")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_add_crop_index.up.sql"), first.UpPath)
	assert.Equal(t, filepath.Join(dir, "000001_add_crop_index.down.sql"), first.DownPath)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "add crop index")
	assert.Contains(t, string(up), "Index crop names for the dashboard")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "rollback")

	second, err := CreateMigration(dir, "seed states", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)
}

func TestCreateMigration_ContinuesNumbering(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_create_producers.up.sql"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "000007_create_producers.down.sql"), nil, 0o644))

	mf, err := CreateMigration(dir, "next", "")
	require.NoError(t, err)
	assert.Equal(t, "000008", mf.Version)
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory yields empty list", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("lists repository migrations in order", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join("..", "..", "..", "migrations"))
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_create_producers", "000002_create_harvests", "000003_relax_harvest_year"}, names)
	})
}
