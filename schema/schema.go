// Package schema has configs, models and errors for all parts of salesight.
package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRow is one unparsed input row as read from a source table.
type RawRow struct {
	Line     int    `json:"line"` // 1-based position in the source: CSV line or sheet row (header counted), Parquet record
	Date     string `json:"date"`
	Product  string `json:"product"`
	Region   string `json:"region"`
	Quantity string `json:"quantity"`
	Price    string `json:"price"`
}

// Record is a validated transaction row.
// Revenue is zero until the feature deriver fills it in.
type Record struct {
	Date     time.Time       `json:"date"`
	Product  string          `json:"product"`
	Region   string          `json:"region"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// MonthKey returns the year-month bucket of the record, e.g. "2024-03".
func (r Record) MonthKey() string {
	return r.Date.Format(MonthKeyLayout)
}

// CleanedDataset holds the valid records in original order plus every rejection.
type CleanedDataset struct {
	Records   []Record             `json:"records"`
	Rejected  []RowValidationError `json:"rejected"`
	TotalRows int                  `json:"total_rows"`
}

// RejectionSummary counts rejected rows per reason.
func (ds *CleanedDataset) RejectionSummary() map[RejectReason]int {
	summary := make(map[RejectReason]int)
	for _, r := range ds.Rejected {
		summary[r.Reason]++
	}
	return summary
}
