package schema_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMonthKey(t *testing.T) {
	r := schema.Record{Date: time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-03", r.MonthKey())
}

func TestRejectionSummary(t *testing.T) {
	ds := &schema.CleanedDataset{
		Rejected: []schema.RowValidationError{
			{Line: 1, Reason: schema.ReasonInvalidDate},
			{Line: 3, Reason: schema.ReasonInvalidDate},
			{Line: 4, Reason: schema.ReasonMissingIdentifier},
		},
	}
	assert.Equal(t, map[schema.RejectReason]int{
		schema.ReasonInvalidDate:       2,
		schema.ReasonMissingIdentifier: 1,
	}, ds.RejectionSummary())
}

func TestAggregateHelpers(t *testing.T) {
	a := schema.Aggregate{
		Dimension: schema.RegionDimension,
		Entries: []schema.AggregateEntry{
			{Key: "East", TotalRevenue: decimal.RequireFromString("10.25"), OrderCount: 1},
			{Key: "West", TotalRevenue: decimal.RequireFromString("4.75"), OrderCount: 2},
		},
	}

	e, ok := a.Lookup("West")
	require.True(t, ok)
	assert.Equal(t, 2, e.OrderCount)

	_, ok = a.Lookup("North")
	assert.False(t, ok)

	assert.True(t, decimal.NewFromInt(15).Equal(a.TotalRevenue()))
	assert.Equal(t, []string{"East", "West"}, a.Keys())
}

func TestScoreWeights(t *testing.T) {
	assert.InDelta(t, 1.0, schema.DefaultWeights().Sum(), 1e-9)
	assert.InDelta(t, 1.0, schema.RevenueWeightedPreset().Sum(), 1e-9)

	m := schema.RevenueWeightedPreset().AsMap()
	assert.Equal(t, 0.7, m[schema.BreakdownRevenue])
	assert.Equal(t, 0.3, m[schema.BreakdownQuantity])
	assert.Equal(t, 0.0, m[schema.BreakdownOrders])
	assert.Len(t, m, len(schema.AllBreakdownKeys))
}

func TestForecastPredictions(t *testing.T) {
	r := schema.ForecastResult{Points: []schema.ForecastPoint{
		{Period: 2, PredictedRevenue: 300},
		{Period: 3, PredictedRevenue: 400},
	}}
	assert.Equal(t, []float64{300, 400}, r.Predictions())
}

func TestAnalysisReportLookups(t *testing.T) {
	cause := &schema.InsufficientDataError{Observations: 1, Required: 2}
	report := &schema.AnalysisReport{
		Source:      "sales.csv",
		TotalRows:   3,
		CleanedRows: 1,
		Rejections: []schema.RowValidationError{
			{Line: 2, Reason: schema.ReasonInvalidNumber},
			{Line: 3, Reason: schema.ReasonInvalidNumber},
		},
		Aggregates: []schema.Aggregate{{Dimension: schema.ProductDimension}},
		Failures:   []schema.StageFailure{{Stage: schema.StageForecast, Message: cause.Error(), Err: cause}},
	}

	_, ok := report.Aggregate(schema.ProductDimension)
	assert.True(t, ok)
	_, ok = report.Aggregate(schema.MonthDimension)
	assert.False(t, ok)

	f, ok := report.Failure(schema.StageForecast)
	require.True(t, ok)
	var insufficient *schema.InsufficientDataError
	assert.True(t, errors.As(f, &insufficient))
	assert.Equal(t, 1, insufficient.Observations)
	_, ok = report.Failure(schema.StageScores)
	assert.False(t, ok)

	summary := report.Summary()
	assert.Equal(t, "sales.csv", summary.Source)
	assert.Equal(t, 2, summary.Rejected)
	assert.Equal(t, 2, summary.Reasons[schema.ReasonInvalidNumber])
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"row", schema.RowValidationError{Line: 4, Field: "date", Value: "bad", Reason: schema.ReasonInvalidDate}, `row 4: invalid date (date="bad")`},
		{"insufficient", &schema.InsufficientDataError{Observations: 1, Required: 2}, "insufficient data for forecast: got 1 observations, need at least 2"},
		{"horizon", &schema.InvalidHorizonError{Horizon: 0}, "forecast horizon must be greater than 0 (received 0)"},
		{"weights", &schema.InvalidWeightsError{Weights: schema.ScoreWeights{Revenue: 0.5}, Reason: "weights must sum to 1"}, "invalid scoring weights (revenue=0.500, quantity=0.000, orders=0.000): weights must sum to 1"},
		{"stage", schema.StageFailure{Stage: schema.StageScores, Message: "boom"}, "scores: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, tt.err, tt.want)
		})
	}

	wrapped := fmt.Errorf("kpis: %w", schema.ErrEmptyInput)
	assert.ErrorIs(t, wrapped, schema.ErrEmptyInput)
	assert.Equal(t, "no valid records to analyze", schema.ErrEmptyInput.Error())
}

func TestStageFailureJSONKeepsCause(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		kind  string
		check func(t *testing.T, err error)
	}{
		{
			name:  "insufficient data",
			cause: fmt.Errorf("forecast: %w", &schema.InsufficientDataError{Observations: 1, Required: 2}),
			kind:  schema.FailureInsufficientData,
			check: func(t *testing.T, err error) {
				var target *schema.InsufficientDataError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, 1, target.Observations)
				assert.Equal(t, 2, target.Required)
			},
		},
		{
			name:  "invalid horizon",
			cause: &schema.InvalidHorizonError{Horizon: -2},
			kind:  schema.FailureInvalidHorizon,
			check: func(t *testing.T, err error) {
				var target *schema.InvalidHorizonError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, -2, target.Horizon)
			},
		},
		{
			name:  "invalid weights",
			cause: &schema.InvalidWeightsError{Weights: schema.ScoreWeights{Revenue: 0.9}, Reason: "weights must sum to 1"},
			kind:  schema.FailureInvalidWeights,
			check: func(t *testing.T, err error) {
				var target *schema.InvalidWeightsError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, 0.9, target.Weights.Revenue)
				assert.Equal(t, "weights must sum to 1", target.Reason)
			},
		},
		{
			name:  "empty input",
			cause: schema.ErrEmptyInput,
			kind:  schema.FailureEmptyInput,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, schema.ErrEmptyInput)
			},
		},
		{
			name:  "quantity overflow",
			cause: fmt.Errorf("total quantity: %w", schema.ErrQuantityOverflow),
			kind:  schema.FailureQuantityOverflow,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, schema.ErrQuantityOverflow)
			},
		},
		{
			name:  "untyped",
			cause: errors.New("boom"),
			kind:  "",
			check: func(t *testing.T, err error) {
				assert.EqualError(t, errors.Unwrap(err), "boom")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure := schema.NewStageFailure(schema.StageForecast, tt.cause)
			assert.Equal(t, tt.kind, failure.Kind)

			data, err := json.Marshal(schema.AnalysisReport{Failures: []schema.StageFailure{failure}})
			require.NoError(t, err)

			var decoded schema.AnalysisReport
			require.NoError(t, json.Unmarshal(data, &decoded))
			require.Len(t, decoded.Failures, 1)

			got := decoded.Failures[0]
			assert.Equal(t, schema.StageForecast, got.Stage)
			assert.Equal(t, tt.cause.Error(), got.Message)
			assert.Equal(t, tt.kind, got.Kind)
			assert.Equal(t, failure.Error(), got.Error())
			tt.check(t, got)
		})
	}
}
