package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/salesight/schema"
)

// Default values for configuration.
const (
	DefaultHorizon     = 6
	MaxHorizon         = 120
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultChartDir    = "charts"
)

// RevenueWeightedPresetName selects schema.RevenueWeightedPreset from --weights.
const RevenueWeightedPresetName = "revenue-weighted"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// WeightsRawInput holds custom scoring weights from the YAML config file.
// Use float64 pointers so omitted fields keep their defaults.
type WeightsRawInput struct {
	Revenue  *float64 `mapstructure:"revenue"`
	Quantity *float64 `mapstructure:"quantity"`
	Orders   *float64 `mapstructure:"orders"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath   string
	Sheet       string
	DateLayouts []string
	FillMissing bool

	Dimensions    []schema.Dimension
	Weights       schema.ScoreWeights
	Horizon       int
	ClampForecast bool

	ResultLimit int
	Explain     bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	ChartDir    string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile        string   `mapstructure:"output-file"`
	Limit             int      `mapstructure:"limit"`
	Precision         int      `mapstructure:"precision"`
	Output            string   `mapstructure:"output"`
	Width             int      `mapstructure:"width"`
	Sheet             string   `mapstructure:"sheet"`
	DateLayouts       []string `mapstructure:"date-layouts"`
	FillMissing       bool     `mapstructure:"fill-missing"`
	Dimensions        string   `mapstructure:"dimensions"`
	CacheBackend      string   `mapstructure:"cache-backend"`
	CacheDBConnect    string   `mapstructure:"cache-db-connect"`
	AnalysisBackend   string   `mapstructure:"analysis-backend"`
	AnalysisDBConnect string   `mapstructure:"analysis-db-connect"`
	Emoji             string   `mapstructure:"emoji"`
	Color             string   `mapstructure:"color"`

	// --- Fields from scoresCmd / forecastCmd flags ---
	Explain       bool   `mapstructure:"explain"`
	WeightsStr    string `mapstructure:"weights-override"`
	Horizon       int    `mapstructure:"horizon"`
	ClampForecast bool   `mapstructure:"clamp-forecast"`
	ChartDir      string `mapstructure:"chart-dir"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.DateLayouts = slices.Clone(c.DateLayouts)
	clone.Dimensions = slices.Clone(c.Dimensions)
	return &clone
}

// HasDimension reports whether the dimension is enabled.
func (c *Config) HasDimension(dim schema.Dimension) bool {
	return slices.Contains(c.Dimensions, dim)
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDimensions(cfg, input); err != nil {
		return err
	}
	if err := processForecast(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	return resolveInputPath(cfg, input)
}

// ProcessDisplayConfig validates the subset of inputs needed by commands that
// read no sales data, such as metrics. No input file is required.
func ProcessDisplayConfig(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processForecast(cfg, input); err != nil {
		return err
	}
	return processCustomWeights(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Analysis Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return err
	}

	// Cache and analysis must not share a SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and analysis storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Sheet = strings.TrimSpace(input.Sheet)
	cfg.FillMissing = input.FillMissing
	cfg.DateLayouts = nil
	for _, layout := range input.DateLayouts {
		if layout = strings.TrimSpace(layout); layout != "" {
			cfg.DateLayouts = append(cfg.DateLayouts, layout)
		}
	}

	cfg.ChartDir = strings.TrimSpace(input.ChartDir)
	if cfg.ChartDir == "" {
		cfg.ChartDir = DefaultChartDir
	}

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}

	// --- 3. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processDimensions parses the comma-separated dimension list. Empty means all.
func processDimensions(cfg *Config, input *ConfigRawInput) error {
	dims, err := ParseDimensions(input.Dimensions)
	if err != nil {
		return err
	}
	cfg.Dimensions = dims
	return nil
}

// ParseDimensions parses "product,region,month" into dimensions in report order.
// Duplicates are dropped and an empty string selects every dimension.
func ParseDimensions(s string) ([]schema.Dimension, error) {
	if strings.TrimSpace(s) == "" {
		return slices.Clone(schema.AllDimensions), nil
	}

	seen := make(map[schema.Dimension]bool)
	for part := range strings.SplitSeq(s, ",") {
		dim := schema.Dimension(strings.ToLower(strings.TrimSpace(part)))
		if dim == "" {
			continue
		}
		if _, ok := schema.ValidDimensions[dim]; !ok {
			return nil, fmt.Errorf("invalid dimension '%s'. must be product, region, month", part)
		}
		seen[dim] = true
	}

	dims := make([]schema.Dimension, 0, len(seen))
	for _, dim := range schema.AllDimensions {
		if seen[dim] {
			dims = append(dims, dim)
		}
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("at least one dimension is required")
	}
	return dims, nil
}

// processForecast validates the forecast horizon and clamping.
func processForecast(cfg *Config, input *ConfigRawInput) error {
	if input.Horizon <= 0 || input.Horizon > MaxHorizon {
		return fmt.Errorf("horizon must be greater than 0 and cannot exceed %d (received %d)", MaxHorizon, input.Horizon)
	}
	cfg.Horizon = input.Horizon
	cfg.ClampForecast = input.ClampForecast
	return nil
}

// ProcessWeightsRawInput merges config-file weights over the defaults.
// If validateSum is true, it validates that the weights sum to 1.0.
func ProcessWeightsRawInput(raw WeightsRawInput, validateSum bool) (schema.ScoreWeights, error) {
	weights := schema.DefaultWeights()
	if raw.Revenue == nil && raw.Quantity == nil && raw.Orders == nil {
		return weights, nil
	}

	// Any provided weight replaces the defaults; omitted ones become 0.
	weights = schema.ScoreWeights{}
	if raw.Revenue != nil {
		weights.Revenue = *raw.Revenue
	}
	if raw.Quantity != nil {
		weights.Quantity = *raw.Quantity
	}
	if raw.Orders != nil {
		weights.Orders = *raw.Orders
	}

	if validateSum {
		if err := checkWeights(weights); err != nil {
			return schema.ScoreWeights{}, err
		}
	}
	return weights, nil
}

// processCustomWeights resolves the final scoring weights.
// The --weights flag takes precedence over the config file.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}

	if input.WeightsStr != "" {
		weights, err = ParseWeightsString(input.WeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --weights format: %w", err)
		}
	}

	cfg.Weights = weights
	return nil
}

// ParseWeightsString parses "revenue:0.5,quantity:0.25,orders:0.25" or the
// preset name "revenue-weighted". Omitted metrics get weight 0.
func ParseWeightsString(s string) (schema.ScoreWeights, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, RevenueWeightedPresetName) {
		return schema.RevenueWeightedPreset(), nil
	}

	var weights schema.ScoreWeights
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return schema.ScoreWeights{}, fmt.Errorf("invalid weight format '%s', expected 'metric:value'", part)
		}

		key := strings.ToLower(strings.TrimSpace(keyValue[0]))
		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return schema.ScoreWeights{}, fmt.Errorf("invalid weight value '%s' for %s: %w", keyValue[1], key, err)
		}

		switch schema.BreakdownKey(key) {
		case schema.BreakdownRevenue:
			weights.Revenue = value
		case schema.BreakdownQuantity:
			weights.Quantity = value
		case schema.BreakdownOrders:
			weights.Orders = value
		default:
			return schema.ScoreWeights{}, fmt.Errorf("invalid metric '%s', must be revenue, quantity, or orders", key)
		}
	}

	if err := checkWeights(weights); err != nil {
		return schema.ScoreWeights{}, err
	}
	return weights, nil
}

func checkWeights(w schema.ScoreWeights) error {
	for key, v := range w.AsMap() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight for %s must be a finite number", key)
		}
		if v < 0 {
			return fmt.Errorf("weight for %s cannot be negative (received %.3f)", key, v)
		}
	}
	if sum := w.Sum(); sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("custom weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveInputPath makes the data file path absolute and checks it is a readable file
// in a supported format.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	if input.InputPathStr == "" {
		return fmt.Errorf("a sales data file is required")
	}
	absPath, err := filepath.Abs(input.InputPathStr)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot read input %q: %w", input.InputPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %q is a directory, expected a .csv, .xlsx or .parquet file", input.InputPathStr)
	}
	if _, ok := SupportedInputFormats[strings.ToLower(filepath.Ext(absPath))]; !ok {
		return fmt.Errorf("unsupported input format %q. must be .csv, .xlsx, .parquet", filepath.Ext(absPath))
	}
	cfg.InputPath = absPath
	return nil
}

// SupportedInputFormats lists file extensions the loader can read.
var SupportedInputFormats = map[string]struct{}{
	".csv":     {},
	".xlsx":    {},
	".parquet": {},
}

// RevalidateInput points cfg at a different data file, applying the same
// checks as the positional argument. An empty path keeps the current input.
func RevalidateInput(cfg *Config, path string) error {
	if path == "" {
		if cfg.InputPath == "" {
			return fmt.Errorf("a sales data file is required")
		}
		return nil
	}
	return resolveInputPath(cfg, &ConfigRawInput{InputPathStr: path})
}

// RevalidateForecast applies a horizon override. Zero keeps the current horizon.
func RevalidateForecast(cfg *Config, horizon int, clamp bool) error {
	if horizon == 0 {
		horizon = cfg.Horizon
	}
	return processForecast(cfg, &ConfigRawInput{Horizon: horizon, ClampForecast: clamp || cfg.ClampForecast})
}
