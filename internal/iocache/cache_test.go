package iocache

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals points the default database files at a temp home and resets the manager.
func resetGlobals(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
}

func TestCaching(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		resetGlobals(t)

		err := InitCaching(schema.SQLiteBackend, "", schema.SQLiteBackend, filepath.Join(t.TempDir(), "analysis.db"))
		require.NoError(t, err)

		assert.NotNil(t, Manager.GetReportStore())
		assert.NotNil(t, Manager.GetAnalysisStore())

		CloseCaching()

		_, err = os.Stat(GetDBFilePath())
		assert.NoError(t, err, "database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals(t)

		err1 := InitCaching(schema.SQLiteBackend, "", "", "")
		err2 := InitCaching(schema.SQLiteBackend, "", "", "")
		err3 := InitCaching(schema.SQLiteBackend, "", "", "")

		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.NoError(t, err3)
		assert.Nil(t, Manager.GetAnalysisStore(), "analysis store stays disabled")

		CloseCaching()
		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals(t)

		require.NoError(t, InitCaching(schema.NoneBackend, "", schema.NoneBackend, ""))
		assert.NotNil(t, Manager.GetReportStore())
		assert.NotNil(t, Manager.GetAnalysisStore())

		CloseCaching()
	})

	t.Run("failed setup", func(t *testing.T) {
		resetGlobals(t)

		err := InitCaching(schema.MySQLBackend, "invalid://connection", "", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize report caching")
	})
}

func TestNoneBackendCacheStore(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	_, _, _, err = store.Get("test_key")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, store.Set("test_key", []byte("test_value"), 1, 123456789))

	_, _, _, err = store.Get("test_key")
	assert.Error(t, err, "Set is a no-op on the none backend")

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestSQLiteBackendOperations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	store, err := NewCacheStore(reportTable, schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	t.Run("miss", func(t *testing.T) {
		_, _, _, err := store.Get("absent")
		assert.True(t, errors.Is(err, sql.ErrNoRows))
	})

	t.Run("set and get", func(t *testing.T) {
		payload := []byte(`{"source":"sales.csv"}`)
		require.NoError(t, store.Set("key1", payload, 1, 1700000000))

		value, version, ts, err := store.Get("key1")
		require.NoError(t, err)
		assert.Equal(t, payload, value)
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1700000000), ts)
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Set("key1", []byte("v2"), 2, 1700000100))

		value, version, ts, err := store.Get("key1")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), value)
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(1700000100), ts)
	})

	t.Run("large value", func(t *testing.T) {
		payload := make([]byte, 256*1024)
		for i := range payload {
			payload[i] = byte(i % 251)
		}
		require.NoError(t, store.Set("big", payload, 1, 1700000200))

		value, _, _, err := store.Get("big")
		require.NoError(t, err)
		assert.Equal(t, payload, value)
	})

	t.Run("status", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, time.Unix(1700000200, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1700000100, 0), status.OldestEntryTime)
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})
}

func TestNewCacheStoreErrors(t *testing.T) {
	tests := []struct {
		name      string
		table     string
		backend   schema.DatabaseBackend
		connStr   string
		errSubstr string
	}{
		{name: "invalid table name", table: "bad-table", backend: schema.SQLiteBackend, errSubstr: "invalid table name"},
		{name: "empty table name", table: "", backend: schema.SQLiteBackend, errSubstr: "cannot be empty"},
		{name: "unsupported backend", table: "ok", backend: "redis", errSubstr: "unsupported backend"},
		{name: "unreachable mysql", table: "ok", backend: schema.MySQLBackend, connStr: "invalid://connection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCacheStore(tt.table, tt.backend, tt.connStr)
			require.Error(t, err)
			if tt.errSubstr != "" {
				assert.Contains(t, err.Error(), tt.errSubstr)
			}
		})
	}
}

func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		contains string
	}{
		{schema.SQLiteBackend, "INSERT OR REPLACE"},
		{schema.MySQLBackend, "ON DUPLICATE KEY UPDATE"},
		{schema.PostgreSQLBackend, "ON CONFLICT (cache_key)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: reportTable, backend: tt.backend}
			assert.Contains(t, store.getUpsertQuery(), tt.contains)
		})
	}
}

func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(reportTable, schema.SQLiteBackend), `"salesight_report_cache"`)
	assert.Contains(t, getCreateTableQuery(reportTable, schema.MySQLBackend), "LONGBLOB")
	assert.Contains(t, getCreateTableQuery(reportTable, schema.PostgreSQLBackend), "BYTEA")
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cache.db")
		store, err := NewCacheStore(reportTable, schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "absent.db"), ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache("unsupported", "", ""))
	})
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, InitCaching(schema.SQLiteBackend, ":memory:", "", ""))
	defer CloseCaching()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			store := Manager.GetReportStore()
			if store == nil {
				t.Errorf("goroutine %d: GetReportStore returned nil", id)
				return
			}
			if err := store.Set("concurrent_key", []byte("value"), 1, int64(1000+id)); err != nil {
				t.Errorf("goroutine %d: Set failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	_, version, _, err := Manager.GetReportStore().Get("concurrent_key")
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
