// Package prep has validation, cleaning and feature derivation for raw sales rows.
package prep

import (
	"math"
	"strings"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
)

// DefaultDateLayouts are tried in order when parsing the date cell.
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02-Jan-2006",
	"Jan 2, 2006",
}

var maxQuantity = decimal.NewFromInt(math.MaxInt64)

// Options tunes how raw rows are cleaned.
type Options struct {
	// DateLayouts are tried before DefaultDateLayouts.
	DateLayouts []string

	// FillMissingNumeric treats blank quantity/price cells as 0.
	FillMissingNumeric bool
}

// Clean validates every raw row and splits them into records and rejections.
// Valid rows keep their input order and duplicates are kept.
// Only a nil input is an error; an empty input yields an empty dataset.
func Clean(rows []schema.RawRow, opts Options) (*schema.CleanedDataset, error) {
	if rows == nil {
		return nil, schema.ErrNoInput
	}

	layouts := make([]string, 0, len(opts.DateLayouts)+len(DefaultDateLayouts))
	layouts = append(layouts, opts.DateLayouts...)
	layouts = append(layouts, DefaultDateLayouts...)

	ds := &schema.CleanedDataset{
		Records:   make([]schema.Record, 0, len(rows)),
		Rejected:  []schema.RowValidationError{},
		TotalRows: len(rows),
	}
	for _, row := range rows {
		rec, rejection := cleanRow(row, layouts, opts.FillMissingNumeric)
		if rejection != nil {
			ds.Rejected = append(ds.Rejected, *rejection)
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// cleanRow checks date, then quantity/price, then identifiers.
// The first failing check determines the rejection reason.
func cleanRow(row schema.RawRow, layouts []string, fillMissing bool) (schema.Record, *schema.RowValidationError) {
	date, ok := ParseDate(row.Date, layouts)
	if !ok {
		return schema.Record{}, reject(row, "date", row.Date, schema.ReasonInvalidDate)
	}

	quantity, ok := ParseQuantity(row.Quantity, fillMissing)
	if !ok {
		return schema.Record{}, reject(row, "quantity", row.Quantity, schema.ReasonInvalidNumber)
	}
	price, ok := ParsePrice(row.Price, fillMissing)
	if !ok {
		return schema.Record{}, reject(row, "price", row.Price, schema.ReasonInvalidNumber)
	}

	product := strings.TrimSpace(row.Product)
	if product == "" {
		return schema.Record{}, reject(row, "product", row.Product, schema.ReasonMissingIdentifier)
	}
	region := strings.TrimSpace(row.Region)
	if region == "" {
		return schema.Record{}, reject(row, "region", row.Region, schema.ReasonMissingIdentifier)
	}

	return schema.Record{
		Date:     date,
		Product:  product,
		Region:   region,
		Quantity: quantity,
		Price:    price,
	}, nil
}

func reject(row schema.RawRow, field, value string, reason schema.RejectReason) *schema.RowValidationError {
	return &schema.RowValidationError{
		Line:   row.Line,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// ParseDate parses s with the first matching layout and truncates it to a UTC calendar date.
func ParseDate(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseQuantity parses a non-negative whole number of units.
// Values like "3.0" are accepted; "2.5" is not.
func ParseQuantity(s string, fillMissing bool) (int64, bool) {
	d, ok := parseNonNegative(s, fillMissing)
	if !ok || !d.IsInteger() || d.GreaterThan(maxQuantity) {
		return 0, false
	}
	return d.IntPart(), true
}

// ParsePrice parses a non-negative unit price exactly.
func ParsePrice(s string, fillMissing bool) (decimal.Decimal, bool) {
	return parseNonNegative(s, fillMissing)
}

func parseNonNegative(s string, fillMissing bool) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		if fillMissing {
			return decimal.Zero, true
		}
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}
