package schema

import "github.com/shopspring/decimal"

// AggregateEntry is the rollup of records sharing one dimension key.
type AggregateEntry struct {
	Key           string          `json:"key"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	OrderCount    int             `json:"order_count"`
}

// Aggregate is the full rollup for one dimension.
// Entries are sorted by key, which makes month keys chronological.
type Aggregate struct {
	Dimension Dimension        `json:"dimension"`
	Entries   []AggregateEntry `json:"entries"`
}

// Lookup returns the entry with the given key.
func (a Aggregate) Lookup(key string) (AggregateEntry, bool) {
	for _, e := range a.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return AggregateEntry{}, false
}

// TotalRevenue sums revenue across all entries.
func (a Aggregate) TotalRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.Entries {
		total = total.Add(e.TotalRevenue)
	}
	return total
}

// Keys returns the entry keys in stored order.
func (a Aggregate) Keys() []string {
	keys := make([]string, len(a.Entries))
	for i, e := range a.Entries {
		keys[i] = e.Key
	}
	return keys
}
