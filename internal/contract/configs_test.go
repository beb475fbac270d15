package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input that passes validation against a real temp CSV file.
func validInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,product,region,quantity,price\n"), 0o644))
	return &ConfigRawInput{
		InputPathStr: path,
		Limit:        DefaultResultLimit,
		Precision:    DefaultPrecision,
		Output:       "text",
		Horizon:      DefaultHorizon,
		CacheBackend: "none",
		Emoji:        "no",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "zero limit", mutate: func(in *ConfigRawInput) { in.Limit = 0 }, expectError: "limit must be greater than 0"},
		{name: "limit too large", mutate: func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }, expectError: "cannot exceed"},
		{name: "precision too high", mutate: func(in *ConfigRawInput) { in.Precision = 5 }, expectError: "precision must be between"},
		{name: "unknown output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: "invalid output format"},
		{name: "parquet needs file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: "--output-file is required"},
		{name: "bad emoji", mutate: func(in *ConfigRawInput) { in.Emoji = "maybe" }, expectError: "invalid --emoji"},
		{name: "bad color", mutate: func(in *ConfigRawInput) { in.Color = "maybe" }, expectError: "invalid --color"},
		{name: "zero horizon", mutate: func(in *ConfigRawInput) { in.Horizon = 0 }, expectError: "horizon must be greater than 0"},
		{name: "bad dimension", mutate: func(in *ConfigRawInput) { in.Dimensions = "product,customer" }, expectError: "invalid dimension"},
		{name: "bad backend", mutate: func(in *ConfigRawInput) { in.CacheBackend = "redis" }, expectError: "invalid cache backend"},
		{name: "mysql without dsn", mutate: func(in *ConfigRawInput) { in.CacheBackend = "mysql" }, expectError: "cache-db-connect is required"},
		{name: "bad weights flag", mutate: func(in *ConfigRawInput) { in.WeightsStr = "revenue:0.9" }, expectError: "must sum to 1.0"},
		{name: "missing input", mutate: func(in *ConfigRawInput) { in.InputPathStr = "" }, expectError: "sales data file is required"},
		{name: "nonexistent input", mutate: func(in *ConfigRawInput) { in.InputPathStr = "/does/not/exist.csv" }, expectError: "cannot read input"},
		{name: "directory input", mutate: func(in *ConfigRawInput) { in.InputPathStr = os.TempDir() }, expectError: "is a directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput(t)
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.True(t, filepath.IsAbs(cfg.InputPath))
			assert.Equal(t, schema.AllDimensions, cfg.Dimensions)
			assert.Equal(t, schema.DefaultWeights(), cfg.Weights)
			assert.Equal(t, DefaultChartDir, cfg.ChartDir)
			assert.True(t, cfg.UseColors)
			assert.False(t, cfg.UseEmojis)
		})
	}
}

func TestProcessAndValidate_UnsupportedExtension(t *testing.T) {
	input := validInput(t)
	path := filepath.Join(t.TempDir(), "sales.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	input.InputPathStr = path

	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported input format")
}

func TestProcessAndValidate_WeightsPrecedence(t *testing.T) {
	input := validInput(t)
	rev, qty := 0.6, 0.4
	input.Weights = WeightsRawInput{Revenue: &rev, Quantity: &qty}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.ScoreWeights{Revenue: 0.6, Quantity: 0.4}, cfg.Weights)

	input.WeightsStr = RevenueWeightedPresetName
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, schema.RevenueWeightedPreset(), cfg.Weights)
}

func TestProcessAndValidate_ForecastAndCleaningOptions(t *testing.T) {
	input := validInput(t)
	input.Horizon = 3
	input.ClampForecast = true
	input.FillMissing = true
	input.DateLayouts = []string{" 02.01.2006 ", ""}
	input.Dimensions = "Month, product, month"
	input.Sheet = " Orders "

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 3, cfg.Horizon)
	assert.True(t, cfg.ClampForecast)
	assert.True(t, cfg.FillMissing)
	assert.Equal(t, []string{"02.01.2006"}, cfg.DateLayouts)
	assert.Equal(t, []schema.Dimension{schema.ProductDimension, schema.MonthDimension}, cfg.Dimensions)
	assert.True(t, cfg.HasDimension(schema.MonthDimension))
	assert.False(t, cfg.HasDimension(schema.RegionDimension))
	assert.Equal(t, "Orders", cfg.Sheet)
}

func TestProcessAndValidate_SharedSQLiteFile(t *testing.T) {
	input := validInput(t)
	input.CacheBackend = "sqlite"
	input.AnalysisBackend = "sqlite"
	input.CacheDBConnect = "/tmp/same.db"
	input.AnalysisDBConnect = "/tmp/same.db"

	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different SQLite database files")
}

func TestParseWeightsString(t *testing.T) {
	tests := []struct {
		input    string
		expected schema.ScoreWeights
		wantErr  bool
	}{
		{"revenue:0.5,quantity:0.25,orders:0.25", schema.ScoreWeights{Revenue: 0.5, Quantity: 0.25, Orders: 0.25}, false},
		{" Revenue : 1 ", schema.ScoreWeights{Revenue: 1}, false},
		{"revenue-weighted", schema.RevenueWeightedPreset(), false},
		{"revenue:0.7,quantity:0.3,", schema.ScoreWeights{Revenue: 0.7, Quantity: 0.3}, false},
		{"revenue=1", schema.ScoreWeights{}, true},
		{"profit:1", schema.ScoreWeights{}, true},
		{"revenue:abc", schema.ScoreWeights{}, true},
		{"revenue:1.5,orders:-0.5", schema.ScoreWeights{}, true},
		{"revenue:0.2", schema.ScoreWeights{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeightsString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected.Revenue, got.Revenue, 1e-9)
			assert.InDelta(t, tt.expected.Quantity, got.Quantity, 1e-9)
			assert.InDelta(t, tt.expected.Orders, got.Orders, 1e-9)
		})
	}
}

func TestProcessWeightsRawInput(t *testing.T) {
	w, err := ProcessWeightsRawInput(WeightsRawInput{}, true)
	require.NoError(t, err)
	assert.Equal(t, schema.DefaultWeights(), w)

	half := 0.5
	_, err = ProcessWeightsRawInput(WeightsRawInput{Revenue: &half}, true)
	assert.Error(t, err)

	w, err = ProcessWeightsRawInput(WeightsRawInput{Revenue: &half}, false)
	require.NoError(t, err)
	assert.Equal(t, schema.ScoreWeights{Revenue: 0.5}, w)
}

func TestParseDimensions(t *testing.T) {
	dims, err := ParseDimensions("")
	require.NoError(t, err)
	assert.Equal(t, schema.AllDimensions, dims)

	dims, err = ParseDimensions("month,region")
	require.NoError(t, err)
	assert.Equal(t, []schema.Dimension{schema.RegionDimension, schema.MonthDimension}, dims)

	_, err = ParseDimensions(" , ")
	assert.Error(t, err)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		DateLayouts: []string{"2006"},
		Dimensions:  []schema.Dimension{schema.ProductDimension},
	}
	clone := cfg.Clone()
	clone.DateLayouts[0] = "changed"
	clone.Dimensions[0] = schema.MonthDimension

	assert.Equal(t, "2006", cfg.DateLayouts[0])
	assert.Equal(t, schema.ProductDimension, cfg.Dimensions[0])
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/sales"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@localhost"))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost dbname=sales"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, "host=localhost"))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "salesight"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "salesight", profile.Prefix)
}

func TestProcessDisplayConfig(t *testing.T) {
	input := validInput(t)
	input.InputPathStr = ""
	input.WeightsStr = RevenueWeightedPresetName

	cfg := &Config{}
	require.NoError(t, ProcessDisplayConfig(cfg, input))
	assert.Empty(t, cfg.InputPath)
	assert.Equal(t, schema.RevenueWeightedPreset(), cfg.Weights)
	assert.Equal(t, DefaultHorizon, cfg.Horizon)

	input.Horizon = -1
	require.Error(t, ProcessDisplayConfig(&Config{}, input))
}

func TestRevalidateInput(t *testing.T) {
	input := validInput(t)

	t.Run("empty keeps current", func(t *testing.T) {
		cfg := &Config{InputPath: input.InputPathStr}
		require.NoError(t, RevalidateInput(cfg, ""))
		assert.Equal(t, input.InputPathStr, cfg.InputPath)
	})

	t.Run("empty without current", func(t *testing.T) {
		err := RevalidateInput(&Config{}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sales data file is required")
	})

	t.Run("new path", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, RevalidateInput(cfg, input.InputPathStr))
		assert.True(t, filepath.IsAbs(cfg.InputPath))
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sales.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		err := RevalidateInput(&Config{}, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported input format")
	})
}

func TestRevalidateForecast(t *testing.T) {
	cfg := &Config{Horizon: 6}
	require.NoError(t, RevalidateForecast(cfg, 0, false))
	assert.Equal(t, 6, cfg.Horizon)
	assert.False(t, cfg.ClampForecast)

	require.NoError(t, RevalidateForecast(cfg, 12, true))
	assert.Equal(t, 12, cfg.Horizon)
	assert.True(t, cfg.ClampForecast)

	require.Error(t, RevalidateForecast(cfg, MaxHorizon+1, false))
	require.Error(t, RevalidateForecast(cfg, -3, false))
}
