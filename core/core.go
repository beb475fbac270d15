// Package core has the analysis pipeline orchestration behind every command.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/salesight/core/algo"
	"github.com/huangsam/salesight/internal/chart"
	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/internal/outwriter"
	"github.com/huangsam/salesight/schema"
)

// ExecutorFunc defines the function signature for executing different analysis commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteReport runs the full pipeline and prints every section of the report.
func ExecuteReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, duration, err := GetReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteReport(report, cfg, duration)
}

// ExecuteKPIs prints the headline business metrics.
func ExecuteKPIs(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := cachedReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	kpis, err := kpisFrom(report)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteKPIs(kpis, report.Summary(), cfg, time.Since(start))
}

// ExecuteProducts prints products ranked by revenue.
func ExecuteProducts(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeDimension(ctx, cfg, mgr, schema.ProductDimension)
}

// ExecuteRegions prints regions ranked by revenue.
func ExecuteRegions(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeDimension(ctx, cfg, mgr, schema.RegionDimension)
}

// ExecuteMonths prints monthly totals in chronological order.
func ExecuteMonths(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	return executeDimension(ctx, cfg, mgr, schema.MonthDimension)
}

func executeDimension(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, dim schema.Dimension) error {
	start := time.Now()
	report, err := cachedReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	entries, err := dimensionEntries(report, dim, cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteAggregate(dim, entries, report.Summary(), cfg, time.Since(start))
}

// ExecuteScores prints products ranked by composite performance score.
func ExecuteScores(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := cachedReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	scores, err := scoresFrom(report, cfg.ResultLimit)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteScores(scores, report.Summary(), cfg, time.Since(start))
}

// ExecuteForecast prints the monthly revenue trend and its projection.
func ExecuteForecast(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	report, err := cachedReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	forecast, err := forecastFrom(report)
	if err != nil {
		return err
	}
	history, _ := report.Aggregate(schema.MonthDimension)
	return outwriter.NewOutWriter().WriteForecast(history, forecast, report.Summary(), cfg, time.Since(start))
}

// ExecuteRejects prints every rejected row. It works even when no row is valid.
func ExecuteRejects(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	result, duration, err := GetRejectionResults(cfg)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRejections(result, cfg, duration)
}

// ExecuteCharts renders the product, region and monthly charts into cfg.ChartDir.
func ExecuteCharts(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, _, err := GetReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	paths, err := chart.RenderAll(report, cfg.ChartDir, cfg.ResultLimit)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Printf("Wrote chart to %s\n", p)
	}
	return nil
}

// ExecuteMetrics displays the formal definitions of the KPIs, scores and forecast.
// This is a static display that does not read any input.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteMetrics(cfg.Weights, cfg)
}

// GetReport runs (or loads from cache) the full analysis report.
func GetReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisReport, time.Duration, error) {
	start := time.Now()
	report, err := cachedReport(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	return report, time.Since(start), nil
}

// GetKPIResults returns the KPI section of the report.
func GetKPIResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.KPIReport, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, mgr)
	if err != nil {
		return schema.KPIReport{}, 0, err
	}
	kpis, err := kpisFrom(report)
	return kpis, duration, err
}

// GetScoreResults returns ranked product scores limited to cfg.ResultLimit.
func GetScoreResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.ProductScore, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, mgr)
	if err != nil {
		return nil, 0, err
	}
	scores, err := scoresFrom(report, cfg.ResultLimit)
	return scores, duration, err
}

// GetForecastResults returns the monthly revenue forecast.
func GetForecastResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.ForecastResult, time.Duration, error) {
	report, duration, err := GetReport(ctx, cfg, mgr)
	if err != nil {
		return schema.ForecastResult{}, 0, err
	}
	forecast, err := forecastFrom(report)
	return forecast, duration, err
}

// GetRejectionResults loads and cleans the input and returns every rejected row.
// The report cache is bypassed so the listing is always complete.
func GetRejectionResults(cfg *contract.Config) (schema.RejectionReport, time.Duration, error) {
	start := time.Now()
	ds, err := loadAndClean(cfg)
	if err != nil {
		return schema.RejectionReport{}, 0, err
	}
	report := &schema.AnalysisReport{
		Source:      cfg.InputPath,
		TotalRows:   ds.TotalRows,
		CleanedRows: len(ds.Records),
		Rejections:  ds.Rejected,
	}
	return schema.RejectionReport{
		Summary:    report.Summary(),
		Rejections: ds.Rejected,
	}, time.Since(start), nil
}

// stageError returns the recorded failure of a stage, or nil.
func stageError(report *schema.AnalysisReport, stage string) error {
	if f, ok := report.Failure(stage); ok {
		return f
	}
	return nil
}

func kpisFrom(report *schema.AnalysisReport) (schema.KPIReport, error) {
	if err := stageError(report, schema.StageKPIs); err != nil {
		return schema.KPIReport{}, err
	}
	if report.KPIs == nil {
		return schema.KPIReport{}, schema.ErrEmptyInput
	}
	return *report.KPIs, nil
}

func scoresFrom(report *schema.AnalysisReport, limit int) ([]schema.ProductScore, error) {
	if err := stageError(report, schema.StageScores); err != nil {
		return nil, err
	}
	return algo.TopN(report.Scores, limit), nil
}

func forecastFrom(report *schema.AnalysisReport) (schema.ForecastResult, error) {
	if err := stageError(report, schema.StageForecast); err != nil {
		return schema.ForecastResult{}, err
	}
	if report.Forecast == nil {
		return schema.ForecastResult{}, fmt.Errorf("no forecast available for %s", report.Source)
	}
	return *report.Forecast, nil
}

// dimensionEntries returns the entries of an enabled dimension. Products and
// regions are ranked by revenue and limited; months stay chronological.
func dimensionEntries(report *schema.AnalysisReport, dim schema.Dimension, limit int) ([]schema.AggregateEntry, error) {
	a, ok := report.Aggregate(dim)
	if !ok {
		return nil, fmt.Errorf("dimension %q is not enabled (see --dimensions)", dim)
	}
	if dim == schema.MonthDimension {
		return a.Entries, nil
	}
	return algo.TopN(algo.RankByRevenueDesc(a.Entries), limit), nil
}
