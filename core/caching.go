package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/huangsam/salesight/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a cached report stays usable.
const cacheTTL = 7 * 24 * time.Hour

// cachedReport returns a report for the configured input, using the report cache when possible.
func cachedReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.AnalysisReport, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetReportStore()
	}
	if store == nil {
		// Fallback to direct computation
		return computeReport(ctx, cfg, mgr)
	}

	key, err := generateCacheKey(cfg)
	if err != nil {
		return computeReport(ctx, cfg, mgr)
	}

	if result := checkCacheHit(store, key); result != nil {
		return result, nil
	}

	return computeAndStore(ctx, cfg, mgr, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.AnalysisReport {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	if version != currentCacheVersion {
		return nil
	}
	if time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}

	var result schema.AnalysisReport
	if err := json.Unmarshal(data, &result); err != nil {
		return nil
	}
	return &result
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, store contract.CacheStore, key string) (*schema.AnalysisReport, error) {
	result, err := computeReport(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store report in cache", err)
		}
	}

	return result, nil
}

// generateCacheKey hashes the input file content together with every setting
// that changes the computed report.
func generateCacheKey(cfg *contract.Config) (string, error) {
	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	_, _ = fmt.Fprintf(h, "|%s|%s|%s|%t|%s|%.6f,%.6f,%.6f|%d|%t",
		cfg.InputPath,
		cfg.Sheet,
		strings.Join(cfg.DateLayouts, ";"),
		cfg.FillMissing,
		strings.Join(dimensionNames(cfg.Dimensions), ","),
		cfg.Weights.Revenue, cfg.Weights.Quantity, cfg.Weights.Orders,
		cfg.Horizon,
		cfg.ClampForecast,
	)
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
