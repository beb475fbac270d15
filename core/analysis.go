package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/salesight/core/agg"
	"github.com/huangsam/salesight/core/algo"
	"github.com/huangsam/salesight/core/prep"
	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/internal/loader"
	"github.com/huangsam/salesight/schema"
)

// loadAndClean reads the configured input and runs validation and revenue derivation.
func loadAndClean(cfg *contract.Config) (*schema.CleanedDataset, error) {
	rows, err := loader.Load(cfg.InputPath, loader.Options{Sheet: cfg.Sheet})
	if err != nil {
		return nil, fmt.Errorf("cannot load %s: %w", cfg.InputPath, err)
	}

	cleaned, err := prep.Clean(rows, prep.Options{
		DateLayouts:        cfg.DateLayouts,
		FillMissingNumeric: cfg.FillMissing,
	})
	if err != nil {
		return nil, err
	}
	return prep.DeriveDataset(cleaned), nil
}

// computeReport performs the full pipeline: load, clean, derive, aggregate,
// then KPIs, scores and forecast. Downstream stage failures are recorded on
// the report instead of aborting the run.
func computeReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisReport, error) {
	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg)
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	if analysisStore != nil {
		configParams := map[string]any{
			"input_path":     cfg.InputPath,
			"dimensions":     dimensionNames(cfg.Dimensions),
			"horizon":        cfg.Horizon,
			"clamp_forecast": cfg.ClampForecast,
			"weights":        cfg.Weights,
			"fill_missing":   cfg.FillMissing,
		}
		analysisID, err := analysisStore.BeginAnalysis(time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		} else if analysisID > 0 {
			ctx = withAnalysisID(ctx, analysisID)
		}
	}

	// --- 1. Load, clean and derive ---
	ds, err := loadAndClean(cfg)
	if err != nil {
		return nil, err
	}

	report := &schema.AnalysisReport{
		Source:      cfg.InputPath,
		GeneratedAt: time.Now(),
		TotalRows:   ds.TotalRows,
		CleanedRows: len(ds.Records),
		Rejections:  ds.Rejected,
	}

	if len(ds.Records) == 0 {
		endTracking(ctx, analysisStore, report)
		return nil, fmt.Errorf("%w: %s", schema.ErrEmptyInput, describeRejections(report.Summary()))
	}

	// --- 2. Aggregation Phase ---
	all, err := agg.AggregateAll(ctx, ds, schema.AllDimensions)
	if err != nil {
		endTracking(ctx, analysisStore, report)
		return nil, err
	}
	byDim := make(map[schema.Dimension]schema.Aggregate, len(all))
	for _, a := range all {
		byDim[a.Dimension] = a
	}
	report.Aggregates = make([]schema.Aggregate, 0, len(cfg.Dimensions))
	for _, a := range all {
		if cfg.HasDimension(a.Dimension) {
			report.Aggregates = append(report.Aggregates, a)
		}
	}

	// --- 3. KPIs ---
	if kpis, err := algo.ComputeKPIs(ds, byDim); err != nil {
		report.Failures = append(report.Failures, schema.NewStageFailure(schema.StageKPIs, err))
	} else {
		report.KPIs = &kpis
	}

	// --- 4. Scoring ---
	if scores, err := algo.ScoreProducts(byDim[schema.ProductDimension], cfg.Weights); err != nil {
		report.Failures = append(report.Failures, schema.NewStageFailure(schema.StageScores, err))
	} else {
		report.Scores = scores
	}

	// --- 5. Forecast ---
	if forecast, err := algo.ForecastMonthly(byDim[schema.MonthDimension], cfg.Horizon); err != nil {
		report.Failures = append(report.Failures, schema.NewStageFailure(schema.StageForecast, err))
	} else {
		if cfg.ClampForecast {
			forecast = algo.ClampNonNegative(forecast)
		}
		report.Forecast = &forecast
	}

	if !shouldSuppressHeader(ctx) {
		for _, f := range report.Failures {
			contract.LogWarn(fmt.Sprintf("Stage %s did not complete", f.Stage), f.Err)
		}
	}

	// --- 6. Record and finish tracking ---
	recordAnalysis(ctx, analysisStore, report)
	endTracking(ctx, analysisStore, report)

	return report, nil
}

// recordAnalysis stores ranked scores and forecast points for the tracked run.
func recordAnalysis(ctx context.Context, store contract.AnalysisStore, report *schema.AnalysisReport) {
	analysisID, ok := getAnalysisID(ctx)
	if store == nil || !ok || analysisID <= 0 {
		return
	}
	for i, s := range report.Scores {
		if err := store.RecordProductScore(analysisID, i+1, s); err != nil {
			logTrackingError("RecordProductScore", s.Product, err)
		}
	}
	if report.Forecast != nil {
		if err := store.RecordForecast(analysisID, *report.Forecast); err != nil {
			logTrackingError("RecordForecast", report.Source, err)
		}
	}
}

// endTracking finalizes the tracked run with row accounting.
func endTracking(ctx context.Context, store contract.AnalysisStore, report *schema.AnalysisReport) {
	analysisID, ok := getAnalysisID(ctx)
	if store == nil || !ok || analysisID <= 0 {
		return
	}
	if err := store.EndAnalysis(analysisID, time.Now(), report.TotalRows, len(report.Rejections)); err != nil {
		contract.LogWarn("Failed to finalize analysis tracking", err)
	}
}

// logTrackingError logs database tracking errors to stderr without disrupting analysis.
func logTrackingError(operation, target string, err error) {
	contract.LogWarn(fmt.Sprintf("Analysis tracking failed for %s on %s", operation, target), err)
}

// describeRejections renders row accounting as "10 rows read, 10 rejected (invalid date: 4, ...)".
func describeRejections(summary schema.RunSummary) string {
	msg := fmt.Sprintf("%d rows read, %d rejected", summary.TotalRows, summary.Rejected)
	if len(summary.Reasons) == 0 {
		return msg
	}
	reasons := make([]string, 0, len(summary.Reasons))
	for reason, count := range summary.Reasons {
		reasons = append(reasons, fmt.Sprintf("%s: %d", reason, count))
	}
	sort.Strings(reasons)
	return msg + " (" + strings.Join(reasons, ", ") + ")"
}

func dimensionNames(dims []schema.Dimension) []string {
	names := make([]string, len(dims))
	for i, d := range dims {
		names[i] = string(d)
	}
	return names
}
