package prep

import (
	"testing"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveRevenue(t *testing.T) {
	tests := []struct {
		name     string
		quantity int64
		price    string
		expected string
	}{
		{"simple", 2, "10.00", "20.00"},
		{"cents exact", 3, "19.99", "59.97"},
		{"half rounds up", 1, "0.005", "0.01"},
		{"below half rounds down", 1, "0.004", "0.00"},
		{"three decimals", 3, "1.115", "3.35"},
		{"zero quantity", 0, "99.99", "0.00"},
		{"zero price", 5, "0", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := schema.Record{
				Date:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Product:  "A",
				Region:   "North",
				Quantity: tt.quantity,
				Price:    decimal.RequireFromString(tt.price),
			}
			out := DeriveRevenue(in)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(out.Revenue), "got %s", out.Revenue)
			assert.True(t, in.Revenue.IsZero(), "input must not be mutated")
		})
	}
}

func TestDeriveDataset_DoesNotMutateInput(t *testing.T) {
	ds := &schema.CleanedDataset{
		Records: []schema.Record{
			{Product: "A", Region: "N", Quantity: 2, Price: decimal.RequireFromString("1.50")},
		},
		Rejected:  []schema.RowValidationError{{Line: 2, Reason: schema.ReasonInvalidDate}},
		TotalRows: 2,
	}

	derived := DeriveDataset(ds)

	assert.True(t, ds.Records[0].Revenue.IsZero())
	assert.True(t, decimal.RequireFromString("3.00").Equal(derived.Records[0].Revenue))
	assert.Equal(t, ds.Rejected, derived.Rejected)
	assert.Equal(t, 2, derived.TotalRows)
}
