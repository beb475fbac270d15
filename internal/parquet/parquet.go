// Package parquet provides data structures and functions for exporting salesight
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the salesight_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalRecords is the number of data rows read from the input
	TotalRecords int32 `parquet:"total_records,snappy"`

	// RejectedRecords is the number of rows the cleaner discarded
	RejectedRecords int32 `parquet:"rejected_records,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ProductScore is one ranked product of an analysis run.
// This struct maps to the salesight_product_scores database table.
type ProductScore struct {
	AnalysisID    int64     `parquet:"analysis_id,snappy"`
	Product       string    `parquet:"product,snappy,dict"`
	AnalysisTime  time.Time `parquet:"analysis_time,snappy"`
	ScoreRank     int32     `parquet:"score_rank,snappy"`
	TotalRevenue  float64   `parquet:"total_revenue,snappy"`
	TotalQuantity int64     `parquet:"total_quantity,snappy"`
	OrderCount    int32     `parquet:"order_count,snappy"`
	Score         float64   `parquet:"score,snappy"`
	ScoreLabel    string    `parquet:"score_label,snappy,dict"`
}

// Forecast is one projected period of an analysis run.
// This struct maps to the salesight_forecasts database table.
type Forecast struct {
	AnalysisID       int64   `parquet:"analysis_id,snappy"`
	Period           int32   `parquet:"period,snappy"`
	PeriodLabel      *string `parquet:"period_label,optional,snappy"`
	PredictedRevenue float64 `parquet:"predicted_revenue,snappy"`
	Slope            float64 `parquet:"slope,snappy"`
	Intercept        float64 `parquet:"intercept,snappy"`
	Clamped          bool    `parquet:"clamped,snappy"`
}

// WriteRows writes a slice of rows to a Parquet file. The schema is derived
// from the struct tags of T.
func WriteRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteAnalysisRunsParquet writes analysis runs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return WriteRows(data, outputPath)
}

// WriteProductScoresParquet writes product scores to a Parquet file.
func WriteProductScoresParquet(data []ProductScore, outputPath string) error {
	return WriteRows(data, outputPath)
}

// WriteForecastsParquet writes forecast points to a Parquet file.
func WriteForecastsParquet(data []Forecast, outputPath string) error {
	return WriteRows(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:      record.AnalysisID,
			StartTime:       record.StartTime,
			EndTime:         record.EndTime,
			RunDurationMs:   record.RunDurationMs,
			TotalRecords:    record.TotalRecords,
			RejectedRecords: record.RejectedRecords,
			ConfigParams:    record.ConfigParams,
		}
	}
	return result
}

// ConvertProductScoreRecords converts schema.ProductScoreRecord to ProductScore for Parquet export.
func ConvertProductScoreRecords(records []schema.ProductScoreRecord) []ProductScore {
	result := make([]ProductScore, len(records))
	for i, record := range records {
		result[i] = ProductScore{
			AnalysisID:    record.AnalysisID,
			Product:       record.Product,
			AnalysisTime:  record.AnalysisTime,
			ScoreRank:     record.ScoreRank,
			TotalRevenue:  record.TotalRevenue,
			TotalQuantity: record.TotalQuantity,
			OrderCount:    record.OrderCount,
			Score:         record.Score,
			ScoreLabel:    record.ScoreLabel,
		}
	}
	return result
}

// ConvertForecastRecords converts schema.ForecastRecord to Forecast for Parquet export.
func ConvertForecastRecords(records []schema.ForecastRecord) []Forecast {
	result := make([]Forecast, len(records))
	for i, record := range records {
		result[i] = Forecast(record)
	}
	return result
}
