package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/huangsam/salesight/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of the KPIs, score and forecast.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display formulas and definitions for KPIs, scores and the forecast",
	Long: `Show the formal definitions behind every number salesight prints:
- KPI definitions
- Score factors and their active weights
- The score and forecast formulas

No sales data is read - this is purely informational.

Examples:
  # Show default weights
  salesight metrics

  # View with custom weights from config file
  salesight metrics --config .salesight.yaml`,
	PreRunE: displaySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
