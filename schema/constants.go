package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in scoring breakdowns.
	BreakdownKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// Dimension represents a grouping dimension for aggregation.
	Dimension string

	// RejectReason represents the reason a raw row was rejected during cleaning.
	RejectReason string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string
)

// Breakdown keys used in the scoring logic.
const (
	BreakdownRevenue  BreakdownKey = "revenue"  // nRevenue
	BreakdownQuantity BreakdownKey = "quantity" // nQuantity
	BreakdownOrders   BreakdownKey = "orders"   // nOrders
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All grouping dimensions supported.
const (
	ProductDimension Dimension = "product"
	RegionDimension  Dimension = "region"
	MonthDimension   Dimension = "month"
)

// Rejection reasons emitted by the cleaner.
const (
	ReasonInvalidDate       RejectReason = "invalid date"
	ReasonInvalidNumber     RejectReason = "invalid quantity/price"
	ReasonMissingIdentifier RejectReason = "missing identifier"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// MonthKeyLayout is the time layout used for month aggregate keys.
const MonthKeyLayout = "2006-01"

// AllDimensions returns every grouping dimension in report order.
var AllDimensions = []Dimension{ProductDimension, RegionDimension, MonthDimension}

// AllBreakdownKeys returns the scoring metrics in display order.
var AllBreakdownKeys = []BreakdownKey{BreakdownRevenue, BreakdownQuantity, BreakdownOrders}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDimensions lists all valid grouping dimensions.
var ValidDimensions = map[Dimension]struct{}{
	ProductDimension: {},
	RegionDimension:  {},
	MonthDimension:   {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultWeights returns the default equal weighting across the scoring metrics.
func DefaultWeights() ScoreWeights {
	return ScoreWeights{
		Revenue:  1.0 / 3.0,
		Quantity: 1.0 / 3.0,
		Orders:   1.0 / 3.0,
	}
}

// RevenueWeightedPreset mirrors the classic 70/30 revenue-to-volume blend.
func RevenueWeightedPreset() ScoreWeights {
	return ScoreWeights{
		Revenue:  0.7,
		Quantity: 0.3,
		Orders:   0,
	}
}
