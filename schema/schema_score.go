package schema

import "github.com/shopspring/decimal"

// ScoreWeights holds the relative contribution of each normalized metric.
type ScoreWeights struct {
	Revenue  float64 `json:"revenue"`
	Quantity float64 `json:"quantity"`
	Orders   float64 `json:"orders"`
}

// AsMap returns the weights keyed by breakdown key.
func (w ScoreWeights) AsMap() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownRevenue:  w.Revenue,
		BreakdownQuantity: w.Quantity,
		BreakdownOrders:   w.Orders,
	}
}

// Sum returns the total of all weights.
func (w ScoreWeights) Sum() float64 {
	return w.Revenue + w.Quantity + w.Orders
}

// ProductScore is the composite performance score of one product.
// Normalized holds each metric rescaled to [0,1]; Breakdown holds its
// weighted contribution to Score.
type ProductScore struct {
	Product       string                   `json:"product"`
	Score         float64                  `json:"score"` // 0..1
	Normalized    map[BreakdownKey]float64 `json:"normalized"`
	Breakdown     map[BreakdownKey]float64 `json:"breakdown"`
	TotalRevenue  decimal.Decimal          `json:"total_revenue"`
	TotalQuantity int64                    `json:"total_quantity"`
	OrderCount    int                      `json:"order_count"`
}
