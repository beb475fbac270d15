// Package chart renders report charts as PNG images.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/huangsam/salesight/core/algo"
	"github.com/huangsam/salesight/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart file names written into the chart directory.
const (
	ProductsFile = "products.png"
	RegionsFile  = "regions.png"
	MonthlyFile  = "monthly.png"
)

var (
	barColor      = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	actualColor   = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	forecastColor = color.RGBA{R: 139, G: 0, B: 0, A: 255}
)

// RenderAll writes one bar chart per ranked dimension and a monthly trend chart.
// Dimensions that were not computed or have no entries are skipped.
// It returns the paths of the files written.
func RenderAll(report *schema.AnalysisReport, dir string, limit int) ([]string, error) {
	if report == nil {
		return nil, fmt.Errorf("no report to chart")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", dir, err)
	}

	var paths []string
	for _, spec := range []struct {
		dim   schema.Dimension
		file  string
		title string
	}{
		{schema.ProductDimension, ProductsFile, "Revenue by product"},
		{schema.RegionDimension, RegionsFile, "Revenue by region"},
	} {
		a, ok := report.Aggregate(spec.dim)
		if !ok || len(a.Entries) == 0 {
			continue
		}
		path := filepath.Join(dir, spec.file)
		entries := algo.TopN(algo.RankByRevenueDesc(a.Entries), limit)
		if err := RevenueBars(entries, spec.title, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if months, ok := report.Aggregate(schema.MonthDimension); ok && len(months.Entries) > 0 {
		path := filepath.Join(dir, MonthlyFile)
		if err := MonthlyTrend(months.Entries, report.Forecast, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// RevenueBars saves a bar chart of revenue per entry in the given order.
func RevenueBars(entries []schema.AggregateEntry, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Revenue"

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = e.TotalRevenue.InexactFloat64()
		labels[i] = e.Key
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	p.NominalX(labels...)
	if len(labels) > 6 {
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.YAlign = draw.YCenter
		p.X.Tick.Label.XAlign = draw.XRight
	}
	p.Y.Min = 0

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// MonthlyTrend saves a line chart of monthly revenue. When a forecast is
// given, the projection continues from the last observed month as a dashed line.
func MonthlyTrend(months []schema.AggregateEntry, forecast *schema.ForecastResult, path string) error {
	p := plot.New()
	p.Title.Text = "Monthly revenue"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "Revenue"

	actual := make(plotter.XYs, len(months))
	labels := make([]string, 0, len(months))
	for i, m := range months {
		actual[i] = plotter.XY{X: float64(i), Y: m.TotalRevenue.InexactFloat64()}
		labels = append(labels, m.Key)
	}

	line, err := plotter.NewLine(actual)
	if err != nil {
		return fmt.Errorf("failed to build trend line: %w", err)
	}
	line.Color = actualColor
	line.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("actual", line)

	if forecast != nil && len(forecast.Points) > 0 {
		projected := make(plotter.XYs, 0, len(forecast.Points)+1)
		projected = append(projected, actual[len(actual)-1])
		for _, pt := range forecast.Points {
			projected = append(projected, plotter.XY{X: float64(pt.Period), Y: pt.PredictedRevenue})
			labels = append(labels, pt.Label)
		}

		dashed, err := plotter.NewLine(projected)
		if err != nil {
			return fmt.Errorf("failed to build forecast line: %w", err)
		}
		dashed.Color = forecastColor
		dashed.Width = vg.Points(2)
		dashed.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(dashed)
		p.Legend.Add("forecast", dashed)
	}

	p.Add(plotter.NewGrid())
	p.NominalX(labels...)
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}
