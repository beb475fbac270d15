package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

// Table names for analysis tracking.
const (
	analysisRunsTable  = "salesight_analysis_runs"
	productScoresTable = "salesight_product_scores"
	forecastsTable     = "salesight_forecasts"
)

// analysisTables lists every analysis table in creation order.
var analysisTables = []string{analysisRunsTable, productScoresTable, forecastsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
// The schema is brought to the latest migration on open.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := ensureSchema(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{
		db:      db,
		backend: backend,
	}, nil
}

func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalRecords, rejectedRecords int) error {
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var startTime timeScanner
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, bindParam(as.backend, 1))
	if err := as.db.QueryRow(query, analysisID).Scan(&startTime); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(startTime.Time).Milliseconds()

	b := func(i int) string { return bindParam(as.backend, i) }
	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_records = %s, rejected_records = %s WHERE analysis_id = %s`,
		quotedTableName, b(1), b(2), b(3), b(4), b(5))
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalRecords, rejectedRecords, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordProductScore stores one ranked product score for the run.
func (as *AnalysisStoreImpl) RecordProductScore(analysisID int64, rank int, score schema.ProductScore) error {
	if as.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, product, analysis_time, score_rank, total_revenue,
		                total_quantity, order_count, score, score_label)
		VALUES (%s)
	`, quoteTableName(productScoresTable, as.backend), placeholders(as.backend, 9))

	args := []any{
		analysisID, score.Product, formatTime(time.Now(), as.backend), rank, score.TotalRevenue.InexactFloat64(),
		score.TotalQuantity, score.OrderCount, score.Score, schema.GetPlainLabel(score.Score),
	}
	if _, err := as.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert product score: %w", err)
	}
	return nil
}

// RecordForecast stores every projected point of the forecast in one transaction.
func (as *AnalysisStoreImpl) RecordForecast(analysisID int64, forecast schema.ForecastResult) error {
	if as.disabled() {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, period, period_label, predicted_revenue, slope, intercept, clamped)
		VALUES (%s)
	`, quoteTableName(forecastsTable, as.backend), placeholders(as.backend, 7))

	tx, err := as.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin forecast insert: %w", err)
	}
	for _, p := range forecast.Points {
		var label *string
		if p.Label != "" {
			label = &p.Label
		}
		if _, err := tx.Exec(query, analysisID, p.Period, label, p.PredictedRevenue, forecast.Slope, forecast.Intercept, forecast.Clamped); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert forecast point %d: %w", p.Period, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit forecast: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.disabled() {
		return status, nil
	}

	runsTable := quoteTableName(analysisRunsTable, as.backend)

	row := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRunTime timeScanner
		row = as.db.QueryRow(fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = lastRunTime.Time

		var oldestRunTime timeScanner
		row = as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runsTable))
		if err := row.Scan(&oldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime.Time

		row = as.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_records), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalRecordsAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total records analyzed: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		row = as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, start_time, end_time, run_duration_ms, total_records, rejected_records, config_params
		FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var startTime, endTime timeScanner
		if err := rows.Scan(&record.AnalysisID, &startTime, &endTime, &record.RunDurationMs,
			&record.TotalRecords, &record.RejectedRecords, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		record.StartTime = startTime.Time
		record.EndTime = endTime.ptr()
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllProductScores retrieves all recorded product scores from the store.
func (as *AnalysisStoreImpl) GetAllProductScores() ([]schema.ProductScoreRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, product, analysis_time, score_rank, total_revenue,
		total_quantity, order_count, score, score_label
		FROM %s ORDER BY analysis_id, score_rank`, quoteTableName(productScoresTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query product scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ProductScoreRecord
	for rows.Next() {
		var record schema.ProductScoreRecord
		var analysisTime timeScanner
		if err := rows.Scan(&record.AnalysisID, &record.Product, &analysisTime, &record.ScoreRank,
			&record.TotalRevenue, &record.TotalQuantity, &record.OrderCount, &record.Score,
			&record.ScoreLabel); err != nil {
			return nil, fmt.Errorf("failed to scan product score: %w", err)
		}
		record.AnalysisTime = analysisTime.Time
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product scores: %w", err)
	}
	return results, nil
}

// GetAllForecasts retrieves all recorded forecast points from the store.
func (as *AnalysisStoreImpl) GetAllForecasts() ([]schema.ForecastRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, period, period_label, predicted_revenue, slope, intercept, clamped
		FROM %s ORDER BY analysis_id, period`, quoteTableName(forecastsTable, as.backend))

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query forecasts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ForecastRecord
	for rows.Next() {
		var record schema.ForecastRecord
		if err := rows.Scan(&record.AnalysisID, &record.Period, &record.PeriodLabel, &record.PredictedRevenue,
			&record.Slope, &record.Intercept, &record.Clamped); err != nil {
			return nil, fmt.Errorf("failed to scan forecast: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating forecasts: %w", err)
	}
	return results, nil
}
