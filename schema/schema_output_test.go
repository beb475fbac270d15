package schema_test

import (
	"testing"

	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Leader Upper", 1.0, "Leader"},
		{"Leader Lower", 0.8, "Leader"},
		{"Strong Upper", 0.79, "Strong"},
		{"Strong Lower", 0.6, "Strong"},
		{"Steady Upper", 0.59, "Steady"},
		{"Steady Lower", 0.4, "Steady"},
		{"Lagging Upper", 0.39, "Lagging"},
		{"Lagging Lower", 0.0, "Lagging"},
		{"Negative Score", -0.5, "Lagging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetPlainLabel(tt.score))
		})
	}
}

func TestEnrichScores(t *testing.T) {
	scores := []schema.ProductScore{
		{Product: "Widget", Score: 0.9},
		{Product: "Gadget", Score: 0.5},
		{Product: "Gizmo", Score: 0.1},
	}

	enriched := schema.EnrichScores(scores)
	require.Len(t, enriched, 3)
	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Leader", enriched[0].Label)
	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Steady", enriched[1].Label)
	assert.Equal(t, 3, enriched[2].Rank)
	assert.Equal(t, "Lagging", enriched[2].Label)
	assert.Equal(t, "Gizmo", enriched[2].Product)
}

func TestEnrichEntries(t *testing.T) {
	t.Run("shares add up to 100", func(t *testing.T) {
		entries := []schema.AggregateEntry{
			{Key: "West", TotalRevenue: decimal.NewFromInt(75)},
			{Key: "East", TotalRevenue: decimal.NewFromInt(25)},
		}
		enriched := schema.EnrichEntries(entries)
		require.Len(t, enriched, 2)
		assert.Equal(t, 1, enriched[0].Rank)
		assert.InDelta(t, 75.0, enriched[0].Share, 1e-9)
		assert.InDelta(t, 25.0, enriched[1].Share, 1e-9)
	})

	t.Run("zero revenue has zero share", func(t *testing.T) {
		enriched := schema.EnrichEntries([]schema.AggregateEntry{{Key: "Free", TotalRevenue: decimal.Zero}})
		require.Len(t, enriched, 1)
		assert.Zero(t, enriched[0].Share)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, schema.EnrichEntries(nil))
	})
}
