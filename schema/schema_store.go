package schema

import "time"

// AnalysisRunRecord represents a row from the salesight_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID      int64
	StartTime       time.Time
	EndTime         *time.Time
	RunDurationMs   *int32
	TotalRecords    int32
	RejectedRecords int32
	ConfigParams    *string
}

// ProductScoreRecord represents a row from the salesight_product_scores table.
type ProductScoreRecord struct {
	AnalysisID    int64
	Product       string
	AnalysisTime  time.Time
	ScoreRank     int32
	TotalRevenue  float64
	TotalQuantity int64
	OrderCount    int32
	Score         float64
	ScoreLabel    string
}

// ForecastRecord represents a row from the salesight_forecasts table.
type ForecastRecord struct {
	AnalysisID       int64
	Period           int32
	PeriodLabel      *string
	PredictedRevenue float64
	Slope            float64
	Intercept        float64
	Clamped          bool
}
