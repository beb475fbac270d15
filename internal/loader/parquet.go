package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/salesight/schema"
	"github.com/parquet-go/parquet-go"
)

// SalesRow is the Parquet layout the loader reads. Every column is a string
// so values reach the cleaner exactly as stored.
type SalesRow struct {
	Date     string `parquet:"date,optional"`
	Product  string `parquet:"product,optional"`
	Region   string `parquet:"region,optional"`
	Quantity string `parquet:"quantity,optional"`
	Price    string `parquet:"price,optional"`
}

// LoadParquet reads a Parquet file of SalesRow records. Line numbers are
// 1-based row ordinals.
func LoadParquet(path string) ([]schema.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet metadata: %w", err)
	}

	fields := pf.Schema().Fields()
	header := make([]string, len(fields))
	for i, field := range fields {
		header[i] = field.Name()
	}
	if _, err := columnIndex(header); err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[SalesRow](f)
	defer func() { _ = reader.Close() }()

	records := make([]SalesRow, reader.NumRows())
	n, err := reader.Read(records)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}

	rows := make([]schema.RawRow, 0, n)
	for i, rec := range records[:n] {
		rows = append(rows, schema.RawRow{
			Line:     i + 1,
			Date:     rec.Date,
			Product:  rec.Product,
			Region:   rec.Region,
			Quantity: rec.Quantity,
			Price:    rec.Price,
		})
	}
	return rows, nil
}

// WriteParquet writes rows in the SalesRow layout. It is the inverse of LoadParquet.
func WriteParquet(path string, rows []schema.RawRow) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	records := make([]SalesRow, len(rows))
	for i, r := range rows {
		records[i] = SalesRow{Date: r.Date, Product: r.Product, Region: r.Region, Quantity: r.Quantity, Price: r.Price}
	}

	writer := parquet.NewGenericWriter[SalesRow](file)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}
