package cmd

import (
	"github.com/huangsam/salesight/core"
	"github.com/spf13/cobra"
)

// rejectsCmd lists rows dropped during cleaning.
var rejectsCmd = &cobra.Command{
	Use:   "rejects <data-file>",
	Short: "List input rows rejected during cleaning.",
	Long: `Show every row that failed validation with its line number, reason and
offending value. Rows are rejected for an unparseable date, a non-numeric or
negative quantity/price, or a missing product/region.

This works even when no row is valid.

Examples:
  salesight rejects sales.csv
  salesight rejects sales.csv --date-layouts 02.01.2006 --fill-missing`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis(core.ExecuteRejects, "rejection listing")
	},
}
