package iocache

import (
	"testing"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "report_cache", false},
		{"leading underscore", "_cache", false},
		{"digits", "cache2", false},
		{"empty", "", true},
		{"leading digit", "2cache", true},
		{"dash", "report-cache", true},
		{"space", "report cache", true},
		{"injection", "cache; DROP TABLE users", true},
		{"quote", `cache"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`runs`", quoteTableName("runs", schema.MySQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.PostgreSQLBackend))
	assert.Equal(t, `"runs"`, quoteTableName("runs", schema.SQLiteBackend))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?, ?", placeholders(schema.MySQLBackend, 3))
	assert.Equal(t, "?", placeholders(schema.SQLiteBackend, 1))
	assert.Equal(t, "$4", bindParam(schema.PostgreSQLBackend, 4))
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "sqlite", driverName(schema.SQLiteBackend))
	assert.Equal(t, "mysql", driverName(schema.MySQLBackend))
	assert.Equal(t, "pgx", driverName(schema.PostgreSQLBackend))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-01T12:30:00Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}

func TestTimeScanner(t *testing.T) {
	want := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		src   any
		valid bool
	}{
		{"nil", nil, false},
		{"time", want, true},
		{"rfc3339", "2024-03-01T12:30:00Z", true},
		{"mysql text", []byte("2024-03-01 12:30:00"), true},
		{"fractional", "2024-03-01 12:30:00.000000", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timeScanner
			require.NoError(t, ts.Scan(tt.src))
			assert.Equal(t, tt.valid, ts.Valid)
			if tt.valid {
				assert.True(t, want.Equal(ts.Time))
				require.NotNil(t, ts.ptr())
			} else {
				assert.Nil(t, ts.ptr())
			}
		})
	}

	t.Run("garbage", func(t *testing.T) {
		var ts timeScanner
		assert.Error(t, ts.Scan("yesterday"))
		assert.Error(t, ts.Scan(42))
	})
}

func TestOpenDatabaseUnsupported(t *testing.T) {
	_, err := openDatabase("redis", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}
