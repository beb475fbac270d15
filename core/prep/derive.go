package prep

import (
	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
)

// RevenuePlaces is the number of decimal places revenue is rounded to.
const RevenuePlaces = 2

// DeriveRevenue returns a copy of r with Revenue = Quantity * Price,
// rounded half-up to two decimal places.
func DeriveRevenue(r schema.Record) schema.Record {
	out := r
	out.Revenue = r.Price.Mul(decimal.NewFromInt(r.Quantity)).Round(RevenuePlaces)
	return out
}

// DeriveDataset returns a new dataset whose records carry derived revenue.
// The input dataset is left untouched.
func DeriveDataset(ds *schema.CleanedDataset) *schema.CleanedDataset {
	records := make([]schema.Record, len(ds.Records))
	for i, r := range ds.Records {
		records[i] = DeriveRevenue(r)
	}
	rejected := make([]schema.RowValidationError, len(ds.Rejected))
	copy(rejected, ds.Rejected)
	return &schema.CleanedDataset{
		Records:   records,
		Rejected:  rejected,
		TotalRows: ds.TotalRows,
	}
}
