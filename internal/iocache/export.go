package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/internal/parquet"
)

// ExecuteAnalysisExport writes the analysis history of the global manager to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	return ExportAnalysis(Manager.GetAnalysisStore(), outputFile)
}

// ExportAnalysis writes every analysis table of the store to its own Parquet file
// named after outputFile.
func ExportAnalysis(store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is not enabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total product score records: %d\n", status.TableSizes[productScoresTable])
	fmt.Printf("Total forecast records: %d\n", status.TableSizes[forecastsTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	scores, err := store.GetAllProductScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve product scores: %w", err)
	}
	forecasts, err := store.GetAllForecasts()
	if err != nil {
		return fmt.Errorf("failed to retrieve forecasts: %w", err)
	}

	runsFile := outputFile + ".analysis_runs.parquet"
	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".product_scores.parquet"
	parquetScores := parquet.ConvertProductScoreRecords(scores)
	if err := parquet.WriteProductScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write product scores: %w", err)
	}
	fmt.Printf("Exported %d product score records to: %s\n", len(parquetScores), scoresFile)

	forecastsFile := outputFile + ".forecasts.parquet"
	parquetForecasts := parquet.ConvertForecastRecords(forecasts)
	if err := parquet.WriteForecastsParquet(parquetForecasts, forecastsFile); err != nil {
		return fmt.Errorf("failed to write forecasts: %w", err)
	}
	fmt.Printf("Exported %d forecast records to: %s\n", len(parquetForecasts), forecastsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
