package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateAnalysis_NoneBackend(t *testing.T) {
	err := MigrateAnalysis(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateAnalysis_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Latest version
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// No-op
	assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, -1))

	// Step down to the first migration, then roll everything back
	assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 0))

	// Back up to a specific version
	assert.NoError(t, MigrateAnalysis(schema.SQLiteBackend, dbPath, 3))
}

func TestMigrateAnalysis_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateAnalysis(schema.SQLiteBackend, ":memory:", -1))
}

func TestMigrateAnalysis_UnknownVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	err := MigrateAnalysis(schema.SQLiteBackend, dbPath, 42)
	assert.Error(t, err)
}

func TestEnsureSchemaCreatesTables(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "schema.db")
	db, err := openDatabase(schema.SQLiteBackend, dbPath, "")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, ensureSchema(db, schema.SQLiteBackend))
	require.NoError(t, ensureSchema(db, schema.SQLiteBackend), "second run is a no-op")

	for _, table := range append(analysisTables, migrationsTable) {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestNewMigrateUnsupportedBackend(t *testing.T) {
	_, err := newMigrate(nil, "redis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
