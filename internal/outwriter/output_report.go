package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/salesight/core/algo"
	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

// PrintReport outputs every section of a full analysis report.
// Sections whose stage failed are replaced by the failure message.
func PrintReport(report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report, cfg)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeReportParquet(report, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(w, report, cfg, duration)
		}, "Wrote report")
	}
}

func writeReportText(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config, duration time.Duration) error {
	_, fmtMoney := createFormatters(cfg.Precision)

	if err := writeSection(w, "Key metrics", cfg); err != nil {
		return err
	}
	if err := writeStageOr(w, report, schema.StageKPIs, func() error {
		if report.KPIs == nil {
			return nil
		}
		return writeKPITable(w, kpiRows(*report.KPIs, fmtMoney))
	}); err != nil {
		return err
	}

	for _, a := range report.Aggregates {
		if err := writeSection(w, "By "+strings.ToLower(dimensionTitle(a.Dimension)), cfg); err != nil {
			return err
		}
		entries := reportEntries(a, cfg.ResultLimit)
		if err := writeAggregateTable(w, a.Dimension, schema.EnrichEntries(entries), cfg); err != nil {
			return err
		}
	}

	if err := writeSection(w, "Product scores", cfg); err != nil {
		return err
	}
	if err := writeStageOr(w, report, schema.StageScores, func() error {
		return writeScoresTable(w, schema.EnrichScores(algo.TopN(report.Scores, cfg.ResultLimit)), cfg)
	}); err != nil {
		return err
	}

	if err := writeSection(w, "Revenue forecast", cfg); err != nil {
		return err
	}
	if err := writeStageOr(w, report, schema.StageForecast, func() error {
		if report.Forecast == nil {
			return nil
		}
		history, _ := report.Aggregate(schema.MonthDimension)
		return writeForecastTable(w, forecastRows(history, *report.Forecast), *report.Forecast, cfg)
	}); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return writeSummaryFooter(w, report.Summary(), cfg, duration)
}

// writeSection prints a section title separated from the previous output.
func writeSection(w io.Writer, title string, cfg *contract.Config) error {
	if cfg.UseEmojis {
		title = "📊 " + title
	}
	_, err := fmt.Fprintf(w, "\n%s\n", title)
	return err
}

// writeStageOr prints the failure of stage when it failed, or calls render otherwise.
func writeStageOr(w io.Writer, report *schema.AnalysisReport, stage string, render func() error) error {
	if f, ok := report.Failure(stage); ok {
		_, err := fmt.Fprintf(w, "Unavailable: %s\n", f.Message)
		return err
	}
	return render()
}

// reportEntries ranks and limits products and regions. Months stay chronological.
func reportEntries(a schema.Aggregate, limit int) []schema.AggregateEntry {
	if a.Dimension == schema.MonthDimension {
		return a.Entries
	}
	return algo.TopN(algo.RankByRevenueDesc(a.Entries), limit)
}

// writeReportCSV writes the report in long format: one value per line.
func writeReportCSV(w io.Writer, report *schema.AnalysisReport, cfg *contract.Config) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)
	header := []string{"section", "key", "metric", "value"}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		write := func(section, key, metric, value string) error {
			return cw.Write([]string{section, key, metric, value})
		}

		if report.KPIs != nil {
			for _, r := range kpiRows(*report.KPIs, fmtMoney) {
				if err := write(schema.StageKPIs, "", r.Metric, r.Value); err != nil {
					return err
				}
			}
		}
		for _, a := range report.Aggregates {
			for _, e := range schema.EnrichEntries(reportEntries(a, cfg.ResultLimit)) {
				section := string(a.Dimension)
				for _, kv := range [][2]string{
					{"revenue", fmtMoney(e.TotalRevenue)},
					{"share", fmtFloat(e.Share)},
					{"quantity", strconv.FormatInt(e.TotalQuantity, 10)},
					{"orders", strconv.Itoa(e.OrderCount)},
				} {
					if err := write(section, e.Key, kv[0], kv[1]); err != nil {
						return err
					}
				}
			}
		}
		for _, s := range schema.EnrichScores(algo.TopN(report.Scores, cfg.ResultLimit)) {
			if err := write(schema.StageScores, s.Product, "score", fmtFloat(s.Score)); err != nil {
				return err
			}
			if err := write(schema.StageScores, s.Product, "label", s.Label); err != nil {
				return err
			}
		}
		if report.Forecast != nil {
			for _, p := range report.Forecast.Points {
				if err := write(schema.StageForecast, p.Label, "predicted_revenue", fmtFloat(p.PredictedRevenue)); err != nil {
					return err
				}
			}
		}
		for _, f := range report.Failures {
			if err := write("failures", f.Stage, "error", f.Message); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeReportParquet writes one Parquet file per section next to cfg.OutputFile,
// e.g. report.kpis.parquet and report.scores.parquet.
func writeReportParquet(report *schema.AnalysisReport, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}
	base := strings.TrimSuffix(cfg.OutputFile, ".parquet")
	_, fmtMoney := createFormatters(cfg.Precision)

	if report.KPIs != nil {
		if err := writeParquetFile(base+".kpis.parquet", kpiRows(*report.KPIs, fmtMoney)); err != nil {
			return err
		}
	}

	var entries []EntryRow
	for _, a := range report.Aggregates {
		entries = append(entries, entryRows(a.Dimension, schema.EnrichEntries(reportEntries(a, cfg.ResultLimit)))...)
	}
	if err := writeParquetFile(base+".aggregates.parquet", entries); err != nil {
		return err
	}

	if len(report.Scores) > 0 {
		if err := writeParquetFile(base+".scores.parquet", scoreRows(schema.EnrichScores(algo.TopN(report.Scores, cfg.ResultLimit)))); err != nil {
			return err
		}
	}
	if report.Forecast != nil {
		history, _ := report.Aggregate(schema.MonthDimension)
		if err := writeParquetFile(base+".forecast.parquet", forecastRows(history, *report.Forecast)); err != nil {
			return err
		}
	}
	if len(report.Rejections) > 0 {
		return writeParquetFile(base+".rejections.parquet", rejectionRows(report.Rejections))
	}
	return nil
}
