package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

const (
	actualKind   = "actual"
	forecastKind = "forecast"
)

// PrintForecast outputs observed monthly revenue followed by the projection,
// dispatching based on the output format configured.
func PrintForecast(history schema.Aggregate, forecast schema.ForecastResult, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	rows := forecastRows(history, forecast)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary  schema.RunSummary     `json:"summary"`
				History  []ForecastRow         `json:"history"`
				Forecast schema.ForecastResult `json:"forecast"`
			}{summary, rowsOfKind(rows, actualKind), forecast})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastCSV(w, rows, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, rows)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeForecastTable(w, rows, forecast, cfg); err != nil {
				return err
			}
			return writeSummaryFooter(w, summary, cfg, duration)
		}, "Wrote table")
	}
}

// writeForecastTable renders history and projection in one table, then the fit line.
func writeForecastTable(w io.Writer, rows []ForecastRow, forecast schema.ForecastResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{
			strconv.Itoa(int(r.Period)),
			displayKey(schema.MonthDimension, r.Month),
			fmtFloat(r.Revenue),
			r.Kind,
		})
	}
	if err := writeTable(w, []string{"Period", "Month", "Revenue", "Kind"}, data); err != nil {
		return err
	}

	line := fmt.Sprintf("Trend: revenue = %s + %s*t over %d months (MAE %s, RMSE %s)",
		fmtFloat(forecast.Intercept), fmtFloat(forecast.Slope), forecast.Observations,
		fmtFloat(forecast.MAE), fmtFloat(forecast.RMSE))
	if forecast.Clamped {
		line += ", negative projections clamped to 0"
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func writeForecastCSV(w io.Writer, rows []ForecastRow, precision int) error {
	fmtFloat, _ := createFormatters(precision)
	return writeCSVWithHeader(w, []string{"period", "month", "revenue", "kind"}, func(cw *csv.Writer) error {
		for _, r := range rows {
			if err := cw.Write([]string{strconv.Itoa(int(r.Period)), r.Month, fmtFloat(r.Revenue), r.Kind}); err != nil {
				return err
			}
		}
		return nil
	})
}

// forecastRows lists observed months (periods 0..n-1) followed by projected ones.
func forecastRows(history schema.Aggregate, forecast schema.ForecastResult) []ForecastRow {
	rows := make([]ForecastRow, 0, len(history.Entries)+len(forecast.Points))
	for i, e := range history.Entries {
		rows = append(rows, ForecastRow{
			Period:  int32(i),
			Month:   e.Key,
			Revenue: e.TotalRevenue.InexactFloat64(),
			Kind:    actualKind,
		})
	}
	for _, p := range forecast.Points {
		rows = append(rows, ForecastRow{
			Period:  int32(p.Period),
			Month:   p.Label,
			Revenue: p.PredictedRevenue,
			Kind:    forecastKind,
		})
	}
	return rows
}

func rowsOfKind(rows []ForecastRow, kind string) []ForecastRow {
	out := make([]ForecastRow, 0, len(rows))
	for _, r := range rows {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
