// Package algo has the KPI, scoring and forecasting math.
package algo

import (
	"fmt"
	"time"

	"github.com/huangsam/salesight/core/agg"
	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
)

// KPIPlaces is the number of decimal places monetary KPIs are rounded to.
const KPIPlaces = 2

// ComputeKPIs derives the headline metrics for a dataset with revenue already derived.
// Product and region aggregates are taken from aggs when present and
// computed otherwise. It fails with schema.ErrQuantityOverflow when the total
// quantity does not fit in an int64.
func ComputeKPIs(ds *schema.CleanedDataset, aggs map[schema.Dimension]schema.Aggregate) (schema.KPIReport, error) {
	if ds == nil || len(ds.Records) == 0 {
		return schema.KPIReport{}, schema.ErrEmptyInput
	}

	products, err := aggregateFor(ds, aggs, schema.ProductDimension)
	if err != nil {
		return schema.KPIReport{}, err
	}
	regions, err := aggregateFor(ds, aggs, schema.RegionDimension)
	if err != nil {
		return schema.KPIReport{}, err
	}

	total := decimal.Zero
	var quantity int64
	first, last := ds.Records[0].Date, ds.Records[0].Date
	for _, r := range ds.Records {
		total = total.Add(r.Revenue)
		if quantity, err = agg.AddQuantity(quantity, r.Quantity); err != nil {
			return schema.KPIReport{}, fmt.Errorf("total quantity: %w", err)
		}
		first = minTime(first, r.Date)
		last = maxTime(last, r.Date)
	}

	orders := len(ds.Records)
	return schema.KPIReport{
		TotalSales:        total.Round(KPIPlaces),
		TotalOrders:       orders,
		TotalQuantity:     quantity,
		AverageOrderValue: AverageOrderValue(total, orders),
		DistinctProducts:  len(products.Entries),
		DistinctRegions:   len(regions.Entries),
		FirstDate:         first,
		LastDate:          last,
		TopProducts:       RankByRevenueDesc(products.Entries),
		TopRegions:        RankByRevenueDesc(regions.Entries),
		BottomRegions:     RankByRevenueAsc(regions.Entries),
	}, nil
}

// AverageOrderValue is total / orders rounded half-up, or 0 when there are no orders.
func AverageOrderValue(total decimal.Decimal, orders int) decimal.Decimal {
	if orders == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(orders)), KPIPlaces)
}

func aggregateFor(ds *schema.CleanedDataset, aggs map[schema.Dimension]schema.Aggregate, dim schema.Dimension) (schema.Aggregate, error) {
	if a, ok := aggs[dim]; ok {
		return a, nil
	}
	a, err := agg.AggregateBy(ds, dim)
	if err != nil {
		return schema.Aggregate{}, fmt.Errorf("aggregating by %s: %w", dim, err)
	}
	return a, nil
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
