package algo

import (
	"sort"

	"github.com/huangsam/salesight/schema"
)

// RankByRevenueDesc returns a copy of entries sorted by revenue descending.
// Ties break on key ascending so the order is deterministic.
func RankByRevenueDesc(entries []schema.AggregateEntry) []schema.AggregateEntry {
	out := make([]schema.AggregateEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RankByRevenueAsc returns a copy of entries sorted by revenue ascending,
// ties on key ascending.
func RankByRevenueAsc(entries []schema.AggregateEntry) []schema.AggregateEntry {
	out := make([]schema.AggregateEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); c != 0 {
			return c < 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// RankScores sorts scores by score descending, then product ascending.
func RankScores(scores []schema.ProductScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Product < scores[j].Product
	})
}

// TopN returns at most limit items from the front of s.
// A non-positive limit returns s unchanged.
func TopN[T any](s []T, limit int) []T {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	return s[:limit]
}
