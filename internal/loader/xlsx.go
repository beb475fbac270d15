package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/salesight/schema"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads one sheet of an Excel workbook. The first row is the header.
// Line numbers are worksheet row numbers.
func LoadXLSX(path, sheet string) ([]schema.RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	if sheet == "" {
		sheet = sheets[0]
	}

	// Raw values keep prices unformatted and dates as serial numbers.
	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("empty input: sheet %q has no header row", sheet)
	}

	idx, err := columnIndex(cells[0])
	if err != nil {
		return nil, err
	}

	rows := []schema.RawRow{}
	for i, record := range cells[1:] {
		if isBlank(record) {
			continue
		}
		row := rowFromCells(i+2, record, idx)
		row.Date = excelDate(row.Date)
		rows = append(rows, row)
	}
	return rows, nil
}

// excelDate converts a serial date cell to YYYY-MM-DD. Text cells pass through.
func excelDate(value string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}
