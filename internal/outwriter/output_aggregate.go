package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
)

// PrintAggregate outputs the entries of one dimension, dispatching based on the output format configured.
func PrintAggregate(dim schema.Dimension, entries []schema.AggregateEntry, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	enriched := schema.EnrichEntries(entries)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary   schema.RunSummary               `json:"summary"`
				Dimension schema.Dimension                `json:"dimension"`
				Entries   []schema.EnrichedAggregateEntry `json:"entries"`
			}{summary, dim, enriched})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAggregateCSV(w, dim, enriched, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, entryRows(dim, enriched))
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeAggregateTable(w, dim, enriched, cfg); err != nil {
				return err
			}
			return writeSummaryFooter(w, summary, cfg, duration)
		}, "Wrote table")
	}
}

// writeAggregateTable renders ranked entries with their revenue share.
func writeAggregateTable(w io.Writer, dim schema.Dimension, entries []schema.EnrichedAggregateEntry, cfg *contract.Config) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)
	maxWidth := GetMaxTableLabelWidth(cfg)

	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		data = append(data, []string{
			strconv.Itoa(e.Rank),
			contract.TruncateLabel(displayKey(dim, e.Key), maxWidth),
			fmtMoney(e.TotalRevenue),
			fmtFloat(e.Share) + "%",
			strconv.FormatInt(e.TotalQuantity, 10),
			strconv.Itoa(e.OrderCount),
		})
	}
	return writeTable(w, []string{"Rank", dimensionTitle(dim), "Revenue", "Share", "Quantity", "Orders"}, data)
}

func writeAggregateCSV(w io.Writer, dim schema.Dimension, entries []schema.EnrichedAggregateEntry, precision int) error {
	fmtFloat, fmtMoney := createFormatters(precision)
	header := []string{"rank", string(dim), "revenue", "share", "quantity", "orders"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, e := range entries {
			if err := cw.Write(entryCSVRow(e, fmtFloat, fmtMoney)); err != nil {
				return err
			}
		}
		return nil
	})
}

func entryCSVRow(e schema.EnrichedAggregateEntry, fmtFloat func(float64) string, fmtMoney func(decimal.Decimal) string) []string {
	return []string{
		strconv.Itoa(e.Rank),
		e.Key,
		fmtMoney(e.TotalRevenue),
		fmtFloat(e.Share),
		strconv.FormatInt(e.TotalQuantity, 10),
		strconv.Itoa(e.OrderCount),
	}
}

// entryRows converts enriched entries into Parquet rows.
func entryRows(dim schema.Dimension, entries []schema.EnrichedAggregateEntry) []EntryRow {
	rows := make([]EntryRow, len(entries))
	for i, e := range entries {
		rows[i] = EntryRow{
			Dimension: string(dim),
			Rank:      int32(e.Rank),
			Key:       e.Key,
			Revenue:   e.TotalRevenue.InexactFloat64(),
			Share:     e.Share,
			Quantity:  e.TotalQuantity,
			Orders:    int32(e.OrderCount),
		}
	}
	return rows
}

// displayKey renders month keys as readable labels.
func displayKey(dim schema.Dimension, key string) string {
	if dim == schema.MonthDimension {
		return monthLabel(key)
	}
	return key
}

func dimensionTitle(dim schema.Dimension) string {
	switch dim {
	case schema.ProductDimension:
		return "Product"
	case schema.RegionDimension:
		return "Region"
	case schema.MonthDimension:
		return "Month"
	default:
		return fmt.Sprintf("%v", dim)
	}
}
