package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shopspring/decimal"
)

// PrintKPIs outputs the KPI report, dispatching based on the output format configured.
func PrintKPIs(kpis schema.KPIReport, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	_, fmtMoney := createFormatters(cfg.Precision)
	rows := kpiRows(kpis, fmtMoney)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary schema.RunSummary `json:"summary"`
				KPIs    schema.KPIReport  `json:"kpis"`
			}{summary, kpis})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
				for _, r := range rows {
					if err := cw.Write([]string{r.Metric, r.Value}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, rows)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeKPITable(w, rows); err != nil {
				return err
			}
			return writeSummaryFooter(w, summary, cfg, duration)
		}, "Wrote table")
	}
}

// writeKPITable renders metric/value pairs as a two-column table.
func writeKPITable(w io.Writer, rows []KPIRow) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.PerColumn = []tw.Align{tw.AlignLeft, tw.AlignRight}
	})

	data := make([][]string, len(rows))
	for i, r := range rows {
		data[i] = []string{r.Metric, r.Value}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// kpiRows flattens the KPI report into display rows.
func kpiRows(kpis schema.KPIReport, fmtMoney func(decimal.Decimal) string) []KPIRow {
	return []KPIRow{
		{"Total sales", fmtMoney(kpis.TotalSales)},
		{"Total orders", fmt.Sprintf("%d", kpis.TotalOrders)},
		{"Total quantity", fmt.Sprintf("%d", kpis.TotalQuantity)},
		{"Average order value", fmtMoney(kpis.AverageOrderValue)},
		{"Distinct products", fmt.Sprintf("%d", kpis.DistinctProducts)},
		{"Distinct regions", fmt.Sprintf("%d", kpis.DistinctRegions)},
		{"First sale", formatDate(kpis.FirstDate)},
		{"Last sale", formatDate(kpis.LastDate)},
		{"Top products", joinEntries(kpis.TopProducts, fmtMoney)},
		{"Top regions", joinEntries(kpis.TopRegions, fmtMoney)},
		{"Bottom regions", joinEntries(kpis.BottomRegions, fmtMoney)},
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.DateOnly)
}

// joinEntries renders entries as "Widget (50.00), Gadget (25.00)".
func joinEntries(entries []schema.AggregateEntry, fmtMoney func(decimal.Decimal) string) string {
	if len(entries) == 0 {
		return "-"
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s (%s)", e.Key, fmtMoney(e.TotalRevenue))
	}
	return strings.Join(parts, ", ")
}
