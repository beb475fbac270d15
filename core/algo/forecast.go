package algo

import (
	"fmt"
	"math"
	"time"

	"github.com/huangsam/salesight/schema"
)

// MinForecastObservations is the smallest series a trend line can be fitted to.
const MinForecastObservations = 2

// Forecast fits an ordinary least squares line y = a + b*t over t = 0..n-1
// and projects it for t = n..n+horizon-1. Negative projections are kept;
// see ClampNonNegative.
func Forecast(series []float64, horizon int) (schema.ForecastResult, error) {
	if horizon <= 0 {
		return schema.ForecastResult{}, &schema.InvalidHorizonError{Horizon: horizon}
	}
	n := len(series)
	if n < MinForecastObservations {
		return schema.ForecastResult{}, &schema.InsufficientDataError{Observations: n, Required: MinForecastObservations}
	}

	intercept, slope := fitLine(series)

	points := make([]schema.ForecastPoint, horizon)
	for i := range horizon {
		t := n + i
		points[i] = schema.ForecastPoint{
			Period:           t,
			PredictedRevenue: intercept + slope*float64(t),
		}
	}

	mae, rmse := fitErrors(series, intercept, slope)
	return schema.ForecastResult{
		Intercept:    intercept,
		Slope:        slope,
		Observations: n,
		Horizon:      horizon,
		Points:       points,
		MAE:          mae,
		RMSE:         rmse,
	}, nil
}

// ForecastMonthly forecasts a month aggregate's revenue and labels each
// projected point with the month it falls in.
func ForecastMonthly(months schema.Aggregate, horizon int) (schema.ForecastResult, error) {
	if months.Dimension != schema.MonthDimension {
		return schema.ForecastResult{}, fmt.Errorf("forecast needs a %s aggregate, got %q", schema.MonthDimension, months.Dimension)
	}

	series := make([]float64, len(months.Entries))
	for i, e := range months.Entries {
		series[i] = e.TotalRevenue.InexactFloat64()
	}

	result, err := Forecast(series, horizon)
	if err != nil {
		return schema.ForecastResult{}, err
	}

	last, err := time.Parse(schema.MonthKeyLayout, months.Entries[len(months.Entries)-1].Key)
	if err != nil {
		return result, nil
	}
	for i := range result.Points {
		result.Points[i].Label = last.AddDate(0, i+1, 0).Format(schema.MonthKeyLayout)
	}
	return result, nil
}

// ClampNonNegative returns a copy of result with negative projections raised to 0.
func ClampNonNegative(result schema.ForecastResult) schema.ForecastResult {
	out := result
	out.Points = make([]schema.ForecastPoint, len(result.Points))
	for i, p := range result.Points {
		p.PredictedRevenue = math.Max(p.PredictedRevenue, 0)
		out.Points[i] = p
	}
	out.Clamped = true
	return out
}

// fitLine returns the OLS intercept and slope of series against its index.
func fitLine(series []float64) (float64, float64) {
	n := float64(len(series))
	tMean := (n - 1) / 2

	var yMean float64
	for _, y := range series {
		yMean += y
	}
	yMean /= n

	var sxy, sxx float64
	for i, y := range series {
		dt := float64(i) - tMean
		sxy += dt * (y - yMean)
		sxx += dt * dt
	}

	slope := sxy / sxx
	return yMean - slope*tMean, slope
}

// fitErrors returns the in-sample mean absolute and root mean squared error.
func fitErrors(series []float64, intercept, slope float64) (float64, float64) {
	var absSum, sqSum float64
	for i, y := range series {
		residual := y - (intercept + slope*float64(i))
		absSum += math.Abs(residual)
		sqSum += residual * residual
	}
	n := float64(len(series))
	return absSum / n, math.Sqrt(sqSum / n)
}
