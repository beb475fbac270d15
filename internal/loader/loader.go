// Package loader reads raw sales rows from CSV, Excel and Parquet files.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/huangsam/salesight/schema"
)

// Required column names, matched case-insensitively against the header row.
const (
	ColumnDate     = "date"
	ColumnProduct  = "product"
	ColumnRegion   = "region"
	ColumnQuantity = "quantity"
	ColumnPrice    = "price"
)

// RequiredColumns lists every column a sales file must carry.
var RequiredColumns = []string{ColumnDate, ColumnProduct, ColumnRegion, ColumnQuantity, ColumnPrice}

// Options tunes how files are read.
type Options struct {
	// Sheet selects the Excel sheet; empty means the first sheet.
	Sheet string
}

// MissingColumnsError is returned when the header lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

// Load reads every data row of the file at path. The format is chosen by
// file extension. On success the returned slice is never nil.
func Load(path string, opts Options) ([]schema.RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx":
		return LoadXLSX(path, opts.Sheet)
	case ".parquet":
		return LoadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}
}

// columnIndex maps each required column to its position in header.
// Extra columns are ignored.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(RequiredColumns))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

// rowFromCells builds a RawRow from positional cells. Short rows yield blank fields.
func rowFromCells(line int, cells []string, idx map[string]int) schema.RawRow {
	cell := func(col string) string {
		if i := idx[col]; i < len(cells) {
			return cells[i]
		}
		return ""
	}
	return schema.RawRow{
		Line:     line,
		Date:     cell(ColumnDate),
		Product:  cell(ColumnProduct),
		Region:   cell(ColumnRegion),
		Quantity: cell(ColumnQuantity),
		Price:    cell(ColumnPrice),
	}
}

// isBlank reports whether every cell is empty.
func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
