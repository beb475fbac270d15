package algo

import (
	"testing"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankByRevenue(t *testing.T) {
	entries := []schema.AggregateEntry{
		entry("b", 1, "10", 1),
		entry("c", 1, "30", 1),
		entry("a", 1, "10", 1),
	}

	assert.Equal(t, []string{"c", "a", "b"}, keys(RankByRevenueDesc(entries)))
	assert.Equal(t, []string{"a", "b", "c"}, keys(RankByRevenueAsc(entries)))
	assert.Equal(t, []string{"b", "c", "a"}, keys(entries), "input must not be reordered")
}

func TestRankScores(t *testing.T) {
	scores := []schema.ProductScore{
		{Product: "y", Score: 0.5},
		{Product: "x", Score: 0.5},
		{Product: "z", Score: 0.9},
	}
	RankScores(scores)

	got := make([]string, len(scores))
	for i, s := range scores {
		got[i] = s.Product
	}
	assert.Equal(t, []string{"z", "x", "y"}, got)
}

func TestTopN(t *testing.T) {
	s := []int{1, 2, 3, 4}
	assert.Equal(t, []int{1, 2}, TopN(s, 2))
	assert.Equal(t, s, TopN(s, 10))
	assert.Equal(t, s, TopN(s, 0))
	assert.Empty(t, TopN([]int{}, 3))
}
