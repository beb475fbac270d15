package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/salesight/internal/iocache"
	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeReport_RecordsAnalysis(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.AnythingOfType("time.Time"), mock.Anything).Return(int64(7), nil)
	store.On("RecordProductScore", int64(7), mock.AnythingOfType("int"), mock.AnythingOfType("schema.ProductScore")).Return(nil)
	store.On("RecordForecast", int64(7), mock.AnythingOfType("schema.ForecastResult")).Return(nil)
	store.On("EndAnalysis", int64(7), mock.AnythingOfType("time.Time"), 4, 0).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetReportStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	report, _, err := GetReport(quietContext(), testConfig("testdata/sales.csv"), mgr)
	require.NoError(t, err)

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "RecordProductScore", len(report.Scores))
	store.AssertCalled(t, "RecordProductScore", int64(7), 1, report.Scores[0])
}

func TestComputeReport_TrackingFailuresDoNotAbort(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetReportStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	report, _, err := GetReport(quietContext(), testConfig("testdata/sales.csv"), mgr)
	require.NoError(t, err)
	assert.NotNil(t, report.KPIs)

	store.AssertNotCalled(t, "RecordProductScore", mock.Anything, mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeReport_EmptyInputEndsTracking(t *testing.T) {
	store := &iocache.MockAnalysisStore{}
	store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(3), nil)
	store.On("EndAnalysis", int64(3), mock.Anything, 2, 2).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetReportStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(store)

	_, _, err := GetReport(quietContext(), testConfig("testdata/all_invalid.csv"), mgr)
	require.ErrorIs(t, err, schema.ErrEmptyInput)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "RecordForecast", mock.Anything, mock.Anything)
}

func TestComputeReport_AggregationFailureEndsTracking(t *testing.T) {
	overflow := filepath.Join(t.TempDir(), "overflow.csv")
	require.NoError(t, os.WriteFile(overflow, []byte(
		"Date,Product,Region,Quantity,Price\n"+
			"2024-01-05,A,North,9000000000000000000,1\n"+
			"2024-01-06,A,North,9000000000000000000,1\n",
	), 0o644))

	canceled, cancel := context.WithCancel(quietContext())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		path    string
		rows    int
		wantErr error
	}{
		{"canceled context", canceled, "testdata/sales.csv", 4, context.Canceled},
		{"quantity overflow", quietContext(), overflow, 2, schema.ErrQuantityOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &iocache.MockAnalysisStore{}
			store.On("BeginAnalysis", mock.Anything, mock.Anything).Return(int64(5), nil)
			store.On("EndAnalysis", int64(5), mock.AnythingOfType("time.Time"), tt.rows, 0).Return(nil)

			mgr := &iocache.MockCacheManager{}
			mgr.On("GetReportStore").Return(nil)
			mgr.On("GetAnalysisStore").Return(store)

			_, _, err := GetReport(tt.ctx, testConfig(tt.path), mgr)
			require.ErrorIs(t, err, tt.wantErr)

			store.AssertExpectations(t)
			store.AssertNotCalled(t, "RecordProductScore", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
