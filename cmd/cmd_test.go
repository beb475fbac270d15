package cmd

import (
	"testing"

	"github.com/huangsam/salesight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqliteFilePath(t *testing.T) {
	assert.Equal(t, "/tmp/custom.db", sqliteFilePath("/tmp/custom.db", "/home/me/default.db"))
	assert.Equal(t, "/home/me/default.db", sqliteFilePath("", "/home/me/default.db"))
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{
		"report", "kpis", "products", "regions", "months", "scores",
		"forecast", "rejects", "charts", "metrics", "cache", "analysis", "mcp", "version",
	} {
		assert.True(t, names[want], "missing command %q", want)
	}

	sub := map[string]bool{}
	for _, c := range analysisCmd.Commands() {
		sub[c.Name()] = true
	}
	assert.Equal(t, map[string]bool{"clear": true, "status": true, "export": true, "migrate": true}, sub)
}

func TestPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	for _, name := range []string{
		"limit", "output", "output-file", "precision", "sheet", "date-layouts",
		"fill-missing", "dimensions", "horizon", "clamp-forecast", "weights-override",
		"explain", "chart-dir", "cache-backend", "analysis-backend",
	} {
		assert.NotNil(t, flags.Lookup(name), "missing flag %q", name)
	}
	require.NotNil(t, analysisMigrateCmd.Flags().Lookup("target-version"))
	assert.Nil(t, flags.Lookup("target-version"))
}

func TestAnalysisContext(t *testing.T) {
	saved := cfg.Output
	defer func() { cfg.Output = saved }()

	cfg.Output = schema.TextOut
	assert.Equal(t, rootCtx, analysisContext())

	cfg.Output = schema.JSONOut
	assert.NotEqual(t, rootCtx, analysisContext())
}
