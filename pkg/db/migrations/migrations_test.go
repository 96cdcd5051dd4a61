package migrations

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEmbeddedMigrationsApplyOnce(t *testing.T) {
	// Setup
	db := openDB(t)
	migrator := NewMigrator(db, nil, nil)

	// Execute
	first, err := migrator.MigrateUp()
	require.NoError(t, err)
	second, err := migrator.MigrateUp()
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 1, first)
	assert.Zero(t, second)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count))
	assert.Zero(t, count)
}

func TestLoadMigrationsSortsByVersion(t *testing.T) {
	source := fstest.MapFS{
		"002_add_index.sql":    {Data: []byte("CREATE INDEX idx_t ON t(v);")},
		"001_create_table.sql": {Data: []byte("CREATE TABLE t (v INTEGER);")},
		"README.md":            {Data: []byte("ignored")},
	}

	migrations, err := NewMigrator(nil, source, nil).LoadMigrations()

	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, "001", migrations[0].Version)
	assert.Equal(t, "create table", migrations[0].Description)
	assert.Equal(t, "002", migrations[1].Version)
}

func TestLoadMigrationsRejectsBadNames(t *testing.T) {
	source := fstest.MapFS{"schema.sql": {Data: []byte("SELECT 1;")}}

	_, err := NewMigrator(nil, source, nil).LoadMigrations()

	assert.Error(t, err)
}

func TestFailedMigrationRollsBack(t *testing.T) {
	// Setup
	db := openDB(t)
	source := fstest.MapFS{
		"001_good.sql": {Data: []byte("CREATE TABLE good (v INTEGER);")},
		"002_bad.sql":  {Data: []byte("CREATE TABLE broken (;")},
	}

	// Execute
	count, err := NewMigrator(db, source, nil).MigrateUp()

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 1, count)

	var recorded int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&recorded))
	assert.Equal(t, 1, recorded)
}

func TestCreateMigrationNumbersFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := CreateMigration(dir, "add runs", now)
	require.NoError(t, err)
	second, err := CreateMigration(dir, "add index", now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "001_add_runs.sql"), first)
	assert.Equal(t, filepath.Join(dir, "002_add_index.sql"), second)

	content, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(content), "2024-03-01T12:00:00Z")
}
