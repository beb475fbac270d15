package schema

import (
	"time"

	"github.com/shopspring/decimal"
)

// KPIReport holds the headline business metrics for a cleaned dataset.
type KPIReport struct {
	TotalSales        decimal.Decimal  `json:"total_sales"`
	TotalOrders       int              `json:"total_orders"`
	TotalQuantity     int64            `json:"total_quantity"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	DistinctProducts  int              `json:"distinct_products"`
	DistinctRegions   int              `json:"distinct_regions"`
	FirstDate         time.Time        `json:"first_date"`
	LastDate          time.Time        `json:"last_date"`
	TopProducts       []AggregateEntry `json:"top_products"`
	TopRegions        []AggregateEntry `json:"top_regions"`
	BottomRegions     []AggregateEntry `json:"bottom_regions"`
}
