package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

// factorDefinitions describes each normalized scoring input in display order.
var factorDefinitions = []schema.MetricsFactor{
	{Key: schema.BreakdownRevenue, Name: "Revenue", Purpose: "Total revenue of the product, min-max normalized"},
	{Key: schema.BreakdownQuantity, Name: "Quantity", Purpose: "Units sold, min-max normalized"},
	{Key: schema.BreakdownOrders, Name: "Orders", Purpose: "Number of transactions, min-max normalized"},
}

// kpiDefinitions maps each KPI to how it is computed.
var kpiDefinitions = map[string]string{
	"total_sales":         "Sum of quantity * price over all cleaned records",
	"total_orders":        "Number of cleaned records",
	"total_quantity":      "Sum of quantity over all cleaned records",
	"average_order_value": "total_sales / total_orders",
	"distinct_products":   "Number of unique product identifiers",
	"distinct_regions":    "Number of unique region identifiers",
	"top_products":        "Products with the highest revenue, ties by name",
	"top_regions":         "Regions with the highest revenue, ties by name",
	"bottom_regions":      "Regions with the lowest revenue, ties by name",
}

// formatWeights formats weights for display in formulas.
func formatWeights(weights schema.ScoreWeights) string {
	w := weights.AsMap()
	var parts []string
	for _, key := range schema.AllBreakdownKeys {
		if weight := w[key]; weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*n%s", weight, string(key)))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}

// PrintMetricsDefinitions displays the formal definitions of the KPIs, score and forecast.
// This is a static display that does not read any sales data.
func PrintMetricsDefinitions(weights schema.ScoreWeights, cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel(weights, cfg)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, renderModel, cfg)
		}, "Wrote text")
	}
}

// buildMetricsRenderModel constructs the complete render model with the active weights.
func buildMetricsRenderModel(weights schema.ScoreWeights, cfg *contract.Config) *schema.MetricsRenderModel {
	w := weights.AsMap()
	factors := make([]schema.MetricsFactor, len(factorDefinitions))
	for i, f := range factorDefinitions {
		f.Weight = w[f.Key]
		factors[i] = f
	}

	return &schema.MetricsRenderModel{
		Title:           "Salesight Metrics",
		Description:     "Scores are weighted sums of min-max normalized product metrics in [0, 1]",
		Factors:         factors,
		ScoreFormula:    formatWeights(weights),
		ForecastFormula: "revenue(t) = intercept + slope*t, least squares over monthly totals with t = 0..n-1",
		ForecastHorizon: cfg.Horizon,
		ClampForecast:   cfg.ClampForecast,
		KPIDefinitions:  kpiDefinitions,
	}
}

func writeMetricsText(w io.Writer, m *schema.MetricsRenderModel, cfg *contract.Config) error {
	title := m.Title
	if cfg.UseEmojis {
		title = "📐 " + title
	}
	lines := []string{
		title,
		strings.Repeat("=", len(m.Title)+3),
		"",
		m.Description,
		"",
		"Score factors:",
	}
	for _, f := range m.Factors {
		lines = append(lines, fmt.Sprintf("   %-9s %.2f  %s", f.Name, f.Weight, f.Purpose))
	}
	lines = append(lines,
		fmt.Sprintf("   Formula: Score = %s", m.ScoreFormula),
		"",
		"Forecast:",
		"   "+m.ForecastFormula,
		fmt.Sprintf("   Horizon: %d months, clamp negatives: %t", m.ForecastHorizon, m.ClampForecast),
		"",
		"KPIs:",
	)
	for _, name := range sortedKeys(m.KPIDefinitions) {
		lines = append(lines, fmt.Sprintf("   %-20s %s", name, m.KPIDefinitions[name]))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeMetricsCSV(w io.Writer, m *schema.MetricsRenderModel) error {
	return writeCSVWithHeader(w, []string{"kind", "name", "weight", "definition"}, func(cw *csv.Writer) error {
		for _, f := range m.Factors {
			if err := cw.Write([]string{"factor", string(f.Key), strconv.FormatFloat(f.Weight, 'f', 4, 64), f.Purpose}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{"formula", "score", "", m.ScoreFormula}); err != nil {
			return err
		}
		if err := cw.Write([]string{"formula", "forecast", "", m.ForecastFormula}); err != nil {
			return err
		}
		for _, name := range sortedKeys(m.KPIDefinitions) {
			if err := cw.Write([]string{"kpi", name, "", m.KPIDefinitions[name]}); err != nil {
				return err
			}
		}
		return nil
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
