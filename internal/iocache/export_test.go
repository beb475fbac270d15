package iocache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAnalysis(t *testing.T) {
	t.Run("requires output file", func(t *testing.T) {
		err := ExportAnalysis(&MockAnalysisStore{}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--output-file is required")
	})

	t.Run("requires store", func(t *testing.T) {
		err := ExportAnalysis(nil, "out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not enabled")
	})

	t.Run("no data", func(t *testing.T) {
		store := &MockAnalysisStore{}
		store.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true}, nil)

		err := ExportAnalysis(store, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no analysis data found")
		store.AssertExpectations(t)
	})

	t.Run("retrieval failure", func(t *testing.T) {
		store := &MockAnalysisStore{}
		store.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true, TotalRuns: 1}, nil)
		store.On("GetAllAnalysisRuns").Return(nil, errors.New("boom"))

		err := ExportAnalysis(store, filepath.Join(t.TempDir(), "out"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to retrieve analysis runs")
	})

	t.Run("writes three files", func(t *testing.T) {
		label := "2024-03"
		store := &MockAnalysisStore{}
		store.On("GetStatus").Return(schema.AnalysisStatus{Backend: "sqlite", Connected: true, TotalRuns: 1}, nil)
		store.On("GetAllAnalysisRuns").Return([]schema.AnalysisRunRecord{{AnalysisID: 1, StartTime: time.Now()}}, nil)
		store.On("GetAllProductScores").Return([]schema.ProductScoreRecord{{AnalysisID: 1, Product: "Widget", ScoreRank: 1}}, nil)
		store.On("GetAllForecasts").Return([]schema.ForecastRecord{{AnalysisID: 1, Period: 2, PeriodLabel: &label}}, nil)

		base := filepath.Join(t.TempDir(), "history")
		require.NoError(t, ExportAnalysis(store, base))

		for _, suffix := range []string{".analysis_runs.parquet", ".product_scores.parquet", ".forecasts.parquet"} {
			info, err := os.Stat(base + suffix)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		}
		store.AssertExpectations(t)
	})
}

func TestExportAnalysisFromSQLite(t *testing.T) {
	store := newTestAnalysisStore(t)
	id, err := store.BeginAnalysis(time.Now(), map[string]any{"horizon": 2})
	require.NoError(t, err)
	require.NoError(t, store.RecordProductScore(id, 1, sampleScore("Widget", 0.7)))
	require.NoError(t, store.EndAnalysis(id, time.Now(), 5, 1))

	base := filepath.Join(t.TempDir(), "export")
	require.NoError(t, ExportAnalysis(store, base))

	_, err = os.Stat(base + ".product_scores.parquet")
	assert.NoError(t, err)
}

func TestMockCacheManager(t *testing.T) {
	mgr := &MockCacheManager{}
	mgr.On("GetReportStore").Return(nil)
	mgr.On("GetAnalysisStore").Return(&MockAnalysisStore{})

	assert.Nil(t, mgr.GetReportStore())
	assert.NotNil(t, mgr.GetAnalysisStore())
	mgr.AssertNumberOfCalls(t, "GetReportStore", 1)
	mgr.AssertCalled(t, "GetAnalysisStore")
}
