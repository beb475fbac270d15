// Package cmd defines the command-line interface for salesight.
package cmd

import (
	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(kpisCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(monthsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(rejectsCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(analysisCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of products or regions to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("sheet", "", "Worksheet to read from .xlsx input (defaults to the first sheet)")
	rootCmd.PersistentFlags().StringSlice("date-layouts", nil, "Additional Go time layouts accepted for the date column")
	rootCmd.PersistentFlags().Bool("fill-missing", false, "Fill blank quantity/price cells with 0 instead of rejecting the row")
	rootCmd.PersistentFlags().String("dimensions", "", "Comma-separated grouping dimensions: product,region,month (default all)")
	rootCmd.PersistentFlags().Int("horizon", contract.DefaultHorizon, "Number of months to forecast")
	rootCmd.PersistentFlags().Bool("clamp-forecast", false, "Clamp negative forecast values to 0")
	rootCmd.PersistentFlags().String("weights-override", "", "Score weights (format: 'revenue:0.5,quantity:0.3,orders:0.2' or 'revenue-weighted')")
	rootCmd.PersistentFlags().Bool("explain", false, "Print the per-metric score contributions")
	rootCmd.PersistentFlags().String("chart-dir", contract.DefaultChartDir, "Directory to write chart images to")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
