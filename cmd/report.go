package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/spf13/cobra"
)

// reportCmd prints every section of the analysis.
var reportCmd = &cobra.Command{
	Use:   "report <data-file>",
	Short: "Show KPIs, rankings, product scores and the revenue forecast.",
	Long: `Clean the sales table and print the full analysis report.

The report contains:
- Headline KPIs (total sales, orders, average order value)
- Revenue by product, region and month (see --dimensions)
- Product scores ranked by weighted normalized metrics
- A linear revenue forecast for the next --horizon months

A failing section (e.g. a forecast with a single month of data) is reported
in place while the other sections are still shown.

Examples:
  # Full report for a CSV export
  salesight report sales.csv

  # Forecast a year ahead and clamp negative projections
  salesight report sales.xlsx --horizon 12 --clamp-forecast

  # Write the whole report as JSON
  salesight report sales.parquet --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteReport, "report")
	},
}

// kpisCmd prints the headline business metrics.
var kpisCmd = &cobra.Command{
	Use:   "kpis <data-file>",
	Short: "Show headline sales metrics.",
	Long: `Print total sales, order count, quantity, average order value, distinct
products and regions, the date range, and the top products and regions.

Examples:
  salesight kpis sales.csv
  salesight kpis sales.csv --output csv --output-file kpis.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteKPIs, "KPI analysis")
	},
}
