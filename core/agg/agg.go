// Package agg has aggregation logic for cleaned sales records.
package agg

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/huangsam/salesight/schema"
	"golang.org/x/sync/errgroup"
)

// AggregateBy groups records by one dimension and sums quantity, revenue and
// row count per key. Entries come back sorted by key, so month keys are
// chronological. An empty dataset yields an empty aggregate. A key whose
// quantity total exceeds math.MaxInt64 fails with schema.ErrQuantityOverflow.
func AggregateBy(ds *schema.CleanedDataset, dim schema.Dimension) (schema.Aggregate, error) {
	keyOf, err := keyFunc(dim)
	if err != nil {
		return schema.Aggregate{}, err
	}

	entries := make(map[string]*schema.AggregateEntry)
	if ds != nil {
		for _, r := range ds.Records {
			key := keyOf(r)
			e, ok := entries[key]
			if !ok {
				e = &schema.AggregateEntry{Key: key}
				entries[key] = e
			}
			if e.TotalQuantity, err = AddQuantity(e.TotalQuantity, r.Quantity); err != nil {
				return schema.Aggregate{}, fmt.Errorf("%s %q: %w", dim, key, err)
			}
			e.TotalRevenue = e.TotalRevenue.Add(r.Revenue)
			e.OrderCount++
		}
	}

	return schema.Aggregate{
		Dimension: dim,
		Entries:   sortedEntries(entries),
	}, nil
}

// AggregateAll computes every requested dimension concurrently.
// Results are returned in the requested order.
func AggregateAll(ctx context.Context, ds *schema.CleanedDataset, dims []schema.Dimension) ([]schema.Aggregate, error) {
	results := make([]schema.Aggregate, len(dims))

	g, ctx := errgroup.WithContext(ctx)
	for i, dim := range dims {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := AggregateBy(ds, dim)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// AddQuantity adds a non-negative quantity to a running total, failing
// instead of wrapping around.
func AddQuantity(total, q int64) (int64, error) {
	if q > 0 && total > math.MaxInt64-q {
		return 0, schema.ErrQuantityOverflow
	}
	return total + q, nil
}

// keyFunc maps a dimension to the record field it groups by.
func keyFunc(dim schema.Dimension) (func(schema.Record) string, error) {
	switch dim {
	case schema.ProductDimension:
		return func(r schema.Record) string { return r.Product }, nil
	case schema.RegionDimension:
		return func(r schema.Record) string { return r.Region }, nil
	case schema.MonthDimension:
		return func(r schema.Record) string { return r.MonthKey() }, nil
	default:
		return nil, fmt.Errorf("%w: %q", schema.ErrUnknownDimension, dim)
	}
}

func sortedEntries(m map[string]*schema.AggregateEntry) []schema.AggregateEntry {
	out := make([]schema.AggregateEntry, 0, len(m))
	for _, e := range m {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key < out[j].Key
	})
	return out
}
