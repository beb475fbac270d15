package algo

import (
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
)

func rec(date, product, region string, qty int64, revenue string) schema.Record {
	d, _ := time.Parse("2006-01-02", date)
	return schema.Record{
		Date:     d,
		Product:  product,
		Region:   region,
		Quantity: qty,
		Revenue:  decimal.RequireFromString(revenue),
	}
}

func fixture() *schema.CleanedDataset {
	return &schema.CleanedDataset{
		Records: []schema.Record{
			rec("2024-02-10", "B", "East", 1, "5.00"),
			rec("2024-01-05", "A", "North", 2, "20.00"),
			rec("2024-01-20", "A", "East", 3, "30.00"),
			rec("2023-12-31", "C", "North", 4, "8.00"),
		},
		TotalRows: 5,
	}
}

func entry(key string, qty int64, revenue string, orders int) schema.AggregateEntry {
	return schema.AggregateEntry{
		Key:           key,
		TotalQuantity: qty,
		TotalRevenue:  decimal.RequireFromString(revenue),
		OrderCount:    orders,
	}
}

func keys(entries []schema.AggregateEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Key
	}
	return out
}
