// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport prints every section of a full analysis report.
func (ow *OutWriter) WriteReport(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	return PrintReport(report, cfg, duration)
}

// WriteKPIs prints the headline business metrics.
func (ow *OutWriter) WriteKPIs(kpis schema.KPIReport, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintKPIs(kpis, summary, cfg, duration)
}

// WriteAggregate prints the entries of one grouping dimension.
func (ow *OutWriter) WriteAggregate(dim schema.Dimension, entries []schema.AggregateEntry, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintAggregate(dim, entries, summary, cfg, duration)
}

// WriteScores prints ranked product scores.
func (ow *OutWriter) WriteScores(scores []schema.ProductScore, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintScores(scores, summary, cfg, duration)
}

// WriteForecast prints monthly history followed by the projected periods.
func (ow *OutWriter) WriteForecast(history schema.Aggregate, forecast schema.ForecastResult, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintForecast(history, forecast, summary, cfg, duration)
}

// WriteRejections prints every rejected row with its reason.
func (ow *OutWriter) WriteRejections(result schema.RejectionReport, cfg *contract.Config, duration time.Duration) error {
	return PrintRejections(result, cfg, duration)
}

// WriteMetrics prints metric definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(weights schema.ScoreWeights, cfg *contract.Config) error {
	return PrintMetricsDefinitions(weights, cfg)
}
