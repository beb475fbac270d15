package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/spf13/cobra"
)

// forecastCmd projects monthly revenue.
var forecastCmd = &cobra.Command{
	Use:   "forecast <data-file>",
	Short: "Project monthly revenue with a linear trend.",
	Long: `Fit revenue = intercept + slope*t by least squares over the monthly totals
(t = 0 for the first month) and project the next --horizon months.

At least two months of data are required.

Examples:
  salesight forecast sales.csv --horizon 3
  salesight forecast sales.csv --clamp-forecast --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteForecast, "forecast")
	},
}
