package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

// PrintScores outputs ranked product scores, dispatching based on the output format configured.
func PrintScores(scores []schema.ProductScore, summary schema.RunSummary, cfg *contract.Config, duration time.Duration) error {
	enriched := schema.EnrichScores(scores)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, struct {
				Summary schema.RunSummary             `json:"summary"`
				Weights schema.ScoreWeights           `json:"weights"`
				Scores  []schema.EnrichedProductScore `json:"scores"`
			}{summary, cfg.Weights, enriched})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeScoresCSV(w, enriched, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return writeParquetFile(cfg.OutputFile, scoreRows(enriched))
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if err := writeScoresTable(w, enriched, cfg); err != nil {
				return err
			}
			return writeSummaryFooter(w, summary, cfg, duration)
		}, "Wrote table")
	}
}

// writeScoresTable renders the score table. With --explain it adds one column
// per weighted metric contribution.
func writeScoresTable(w io.Writer, scores []schema.EnrichedProductScore, cfg *contract.Config) error {
	fmtFloat, fmtMoney := createFormatters(cfg.Precision)
	maxWidth := GetMaxTableLabelWidth(cfg)

	header := []string{"Rank", "Product", "Score", "Label", "Revenue", "Quantity", "Orders"}
	if cfg.Explain {
		for _, k := range schema.AllBreakdownKeys {
			header = append(header, "+"+string(k))
		}
	}

	data := make([][]string, 0, len(scores))
	for _, s := range scores {
		label := s.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(s.Score)
		}
		row := []string{
			strconv.Itoa(s.Rank),
			contract.TruncateLabel(s.Product, maxWidth),
			fmtFloat(s.Score),
			label,
			fmtMoney(s.TotalRevenue),
			strconv.FormatInt(s.TotalQuantity, 10),
			strconv.Itoa(s.OrderCount),
		}
		if cfg.Explain {
			for _, k := range schema.AllBreakdownKeys {
				row = append(row, fmtFloat(s.Breakdown[k]))
			}
		}
		data = append(data, row)
	}
	return writeTable(w, header, data)
}

func writeScoresCSV(w io.Writer, scores []schema.EnrichedProductScore, precision int) error {
	fmtFloat, fmtMoney := createFormatters(precision)
	header := []string{"rank", "product", "score", "label", "revenue", "quantity", "orders"}
	for _, k := range schema.AllBreakdownKeys {
		header = append(header, string(k)+"_contribution")
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range scores {
			row := []string{
				strconv.Itoa(s.Rank),
				s.Product,
				fmtFloat(s.Score),
				s.Label,
				fmtMoney(s.TotalRevenue),
				strconv.FormatInt(s.TotalQuantity, 10),
				strconv.Itoa(s.OrderCount),
			}
			for _, k := range schema.AllBreakdownKeys {
				row = append(row, fmtFloat(s.Breakdown[k]))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// scoreRows converts enriched scores into Parquet rows.
func scoreRows(scores []schema.EnrichedProductScore) []ScoreRow {
	rows := make([]ScoreRow, len(scores))
	for i, s := range scores {
		rows[i] = ScoreRow{
			Rank:                 int32(s.Rank),
			Product:              s.Product,
			Score:                s.Score,
			Label:                s.Label,
			Revenue:              s.TotalRevenue.InexactFloat64(),
			Quantity:             s.TotalQuantity,
			Orders:               int32(s.OrderCount),
			RevenueContribution:  s.Breakdown[schema.BreakdownRevenue],
			QuantityContribution: s.Breakdown[schema.BreakdownQuantity],
			OrdersContribution:   s.Breakdown[schema.BreakdownOrders],
		}
	}
	return rows
}
