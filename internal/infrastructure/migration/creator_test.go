package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/salescrm/backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add deals table", "add_deals_table"},
		{"Add-Deals-Table", "add_deals_table"},
		{"ADD__DEALS__TABLE", "add_deals_table"},
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

func TestCreateMigration_SequentialVersions(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "add deals table", "Deals with stage and value")
	require.NoError(t, err)
	assert.Equal(t, "000001", first.Version)
	assert.True(t, strings.HasSuffix(first.UpPath, "000001_add_deals_table.up.sql"))

	second, err := CreateMigration(dir, "add tasks", "")
	require.NoError(t, err)
	assert.Equal(t, "000002", second.Version)

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Deals with stage and value")

	down, err := os.ReadFile(first.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"000002_tasks.up.sql":    {},
		"000001_init.up.sql":     {},
		"000001_init.down.sql":   {},
		"README.md":              {},
		"notaversion_x.up.sql":   {},
		"nested/000003_x.up.sql": {},
	}

	entries, err := ListMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Version: 1, Name: "init", HasDown: true}, entries[0])
	assert.Equal(t, Entry{Version: 2, Name: "tasks", HasDown: false}, entries[1])
}

func TestListMigrations_MissingDir(t *testing.T) {
	entries, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.Version, "versions are contiguous")
		assert.True(t, e.HasDown, "migration %d has a down file", e.Version)
	}
}
