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

// PrintRejections outputs every rejected row, dispatching based on the output format configured.
func PrintRejections(result schema.RejectionReport, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"line", "reason", "field", "value"}, func(cw *csv.Writer) error {
				for _, r := range result.Rejections {
					if err := cw.Write([]string{strconv.Itoa(r.Line), string(r.Reason), r.Field, r.Value}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, rejectionRows(result.Rejections))
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeRejectionsTable(w, result.Rejections, cfg); err != nil {
				return err
			}
			return writeSummaryFooter(w, result.Summary, cfg, duration)
		}, "Wrote table")
	}
}

func writeRejectionsTable(w io.Writer, rejections []schema.RowValidationError, cfg *contract.Config) error {
	if len(rejections) == 0 {
		_, err := fmt.Fprintln(w, "No rows were rejected.")
		return err
	}
	maxWidth := GetMaxTableLabelWidth(cfg)
	data := make([][]string, 0, len(rejections))
	for _, r := range rejections {
		data = append(data, []string{
			strconv.Itoa(r.Line),
			string(r.Reason),
			r.Field,
			contract.TruncateLabel(r.Value, maxWidth),
		})
	}
	return writeTable(w, []string{"Line", "Reason", "Field", "Value"}, data)
}

func rejectionRows(rejections []schema.RowValidationError) []RejectionRow {
	rows := make([]RejectionRow, len(rejections))
	for i, r := range rejections {
		rows[i] = RejectionRow{
			Line:   int32(r.Line),
			Reason: string(r.Reason),
			Field:  r.Field,
			Value:  r.Value,
		}
	}
	return rows
}
