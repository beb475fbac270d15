package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/internal/parquet"
	"github.com/huangsam/salesight/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shopspring/decimal"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeParquetFile writes rows to a Parquet file. Parquet is binary, so a file is required.
func writeParquetFile[T any](outputFile string, rows []T) error {
	if outputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}
	if err := parquet.WriteRows(rows, outputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", outputFile)
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, fmtMoney func(decimal.Decimal) string) {
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	fmtMoney = func(d decimal.Decimal) string {
		return d.StringFixed(int32(precision))
	}
	return fmtFloat, fmtMoney
}

// formatReasons renders rejection counts as "invalid date: 2, missing identifier: 1".
func formatReasons(reasons map[schema.RejectReason]int) string {
	parts := make([]string, 0, len(reasons))
	for reason, count := range reasons {
		parts = append(parts, fmt.Sprintf("%s: %d", reason, count))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

// writeSummaryFooter prints row accounting and run details below a table.
func writeSummaryFooter(w io.Writer, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	line := fmt.Sprintf("Rows: %d read, %d cleaned, %d rejected", summary.TotalRows, summary.CleanedRows, summary.Rejected)
	if summary.Rejected > 0 {
		line += " (" + formatReasons(summary.Reasons) + ")"
	}
	if _, err := fmt.Fprintln(w, line); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

// monthLabel renders a YYYY-MM key as "Jan 2024" for tables. Other keys pass through.
func monthLabel(key string) string {
	if t, err := time.Parse(schema.MonthKeyLayout, key); err == nil {
		return t.Format("Jan 2006")
	}
	return key
}

// writeTable renders a right-aligned table with the given header and rows.
func writeTable(w io.Writer, header []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
