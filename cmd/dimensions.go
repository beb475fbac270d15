package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/spf13/cobra"
)

// productsCmd ranks products by revenue.
var productsCmd = &cobra.Command{
	Use:   "products <data-file>",
	Short: "Show products ranked by revenue.",
	Long: `Group cleaned transactions by product and rank them by total revenue.
Ties are broken by product name.

Examples:
  salesight products sales.csv --limit 5`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteProducts, "product analysis")
	},
}

// regionsCmd ranks regions by revenue.
var regionsCmd = &cobra.Command{
	Use:   "regions <data-file>",
	Short: "Show regions ranked by revenue.",
	Long: `Group cleaned transactions by region and rank them by total revenue.
Ties are broken by region name.

Examples:
  salesight regions sales.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteRegions, "region analysis")
	},
}

// monthsCmd lists monthly totals.
var monthsCmd = &cobra.Command{
	Use:   "months <data-file>",
	Short: "Show monthly revenue in chronological order.",
	Long: `Group cleaned transactions by calendar month. Every month is listed,
oldest first, regardless of --limit.

Examples:
  salesight months sales.csv --output csv --output-file months.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteMonths, "monthly analysis")
	},
}
