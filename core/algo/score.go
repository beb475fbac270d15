package algo

import (
	"math"

	"github.com/huangsam/salesight/schema"
)

// weightTolerance is how far the weight sum may drift from 1.
const weightTolerance = 0.001

// ValidateWeights checks that every weight is finite and non-negative and that
// they sum to 1 within tolerance.
func ValidateWeights(w schema.ScoreWeights) error {
	for _, k := range schema.AllBreakdownKeys {
		v := w.AsMap()[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &schema.InvalidWeightsError{Weights: w, Reason: string(k) + " weight is not a finite number"}
		}
		if v < 0 {
			return &schema.InvalidWeightsError{Weights: w, Reason: string(k) + " weight is negative"}
		}
	}
	if math.Abs(w.Sum()-1.0) > weightTolerance {
		return &schema.InvalidWeightsError{Weights: w, Reason: "weights must sum to 1"}
	}
	return nil
}

// ScoreProducts ranks products by a weighted blend of min-max normalized
// revenue, quantity and order count. When every product has the same value
// for a metric, that metric normalizes to 1 for all of them.
func ScoreProducts(products schema.Aggregate, weights schema.ScoreWeights) ([]schema.ProductScore, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}
	if len(products.Entries) == 0 {
		return nil, schema.ErrEmptyInput
	}

	revenue := make([]float64, len(products.Entries))
	quantity := make([]float64, len(products.Entries))
	orders := make([]float64, len(products.Entries))
	for i, e := range products.Entries {
		revenue[i] = e.TotalRevenue.InexactFloat64()
		quantity[i] = float64(e.TotalQuantity)
		orders[i] = float64(e.OrderCount)
	}

	normalized := map[schema.BreakdownKey][]float64{
		schema.BreakdownRevenue:  minMax(revenue),
		schema.BreakdownQuantity: minMax(quantity),
		schema.BreakdownOrders:   minMax(orders),
	}
	w := weights.AsMap()

	scores := make([]schema.ProductScore, len(products.Entries))
	for i, e := range products.Entries {
		norm := make(map[schema.BreakdownKey]float64, len(schema.AllBreakdownKeys))
		breakdown := make(map[schema.BreakdownKey]float64, len(schema.AllBreakdownKeys))
		var score float64
		for _, k := range schema.AllBreakdownKeys {
			norm[k] = normalized[k][i]
			contribution := w[k] * norm[k]
			breakdown[k] = contribution
			score += contribution
		}
		scores[i] = schema.ProductScore{
			Product:       e.Key,
			Score:         clamp01(score),
			Normalized:    norm,
			Breakdown:     breakdown,
			TotalRevenue:  e.TotalRevenue,
			TotalQuantity: e.TotalQuantity,
			OrderCount:    e.OrderCount,
		}
	}

	RankScores(scores)
	return scores, nil
}

// minMax scales values into [0,1]. A constant series maps to all ones.
func minMax(values []float64) []float64 {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]float64, len(values))
	span := hi - lo
	for i, v := range values {
		if span == 0 {
			out[i] = 1.0
			continue
		}
		out[i] = (v - lo) / span
	}
	return out
}

// clamp01 absorbs float drift from weights that sum to 1 only within tolerance.
func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
