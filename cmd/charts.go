package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/spf13/cobra"
)

// chartsCmd renders PNG charts.
var chartsCmd = &cobra.Command{
	Use:   "charts <data-file>",
	Short: "Render product, region and monthly revenue charts.",
	Long: `Write PNG charts into --chart-dir:
- products.png: revenue by product
- regions.png:  revenue by region
- monthly.png:  monthly revenue with the forecast as a dashed line

Examples:
  salesight charts sales.csv --chart-dir out/charts --horizon 6`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteCharts, "chart rendering")
	},
}
