package outwriter

// Parquet layouts for --output parquet. Money is stored as float64 since
// Parquet readers expect numeric columns.

// KPIRow is one headline metric.
type KPIRow struct {
	Metric string `parquet:"metric"`
	Value  string `parquet:"value"`
}

// EntryRow is one aggregate entry with its rank and revenue share.
type EntryRow struct {
	Dimension string  `parquet:"dimension,dict"`
	Rank      int32   `parquet:"rank"`
	Key       string  `parquet:"key"`
	Revenue   float64 `parquet:"revenue"`
	Share     float64 `parquet:"share"`
	Quantity  int64   `parquet:"quantity"`
	Orders    int32   `parquet:"orders"`
}

// ScoreRow is one ranked product score with its per-metric contributions.
type ScoreRow struct {
	Rank                 int32   `parquet:"rank"`
	Product              string  `parquet:"product"`
	Score                float64 `parquet:"score"`
	Label                string  `parquet:"label,dict"`
	Revenue              float64 `parquet:"revenue"`
	Quantity             int64   `parquet:"quantity"`
	Orders               int32   `parquet:"orders"`
	RevenueContribution  float64 `parquet:"revenue_contribution"`
	QuantityContribution float64 `parquet:"quantity_contribution"`
	OrdersContribution   float64 `parquet:"orders_contribution"`
}

// ForecastRow is one observed or projected month.
type ForecastRow struct {
	Period  int32   `parquet:"period"`
	Month   string  `parquet:"month"`
	Revenue float64 `parquet:"revenue"`
	Kind    string  `parquet:"kind,dict"` // actual or forecast
}

// RejectionRow is one rejected input row.
type RejectionRow struct {
	Line   int32  `parquet:"line"`
	Reason string `parquet:"reason,dict"`
	Field  string `parquet:"field"`
	Value  string `parquet:"value"`
}
