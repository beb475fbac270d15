package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/spf13/cobra"
)

// scoresCmd ranks products by composite score.
var scoresCmd = &cobra.Command{
	Use:   "scores <data-file>",
	Short: "Show products ranked by composite performance score.",
	Long: `Score every product from its min-max normalized revenue, quantity and
order count, combined with weights that sum to 1.

Each product gets a tier label:
- Leader  (score >= 0.8)
- Strong  (score >= 0.6)
- Steady  (score >= 0.4)
- Lagging (below 0.4)

Weights come from the weights section of .salesight.yaml or --weights-override.

Examples:
  # Default equal weights
  salesight scores sales.csv

  # Classic 70/30 revenue-to-volume blend with per-metric contributions
  salesight scores sales.csv --weights-override revenue-weighted --explain

  # Custom weights
  salesight scores sales.csv --weights-override "revenue:0.5,quantity:0.25,orders:0.25"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteScores, "score analysis")
	},
}
