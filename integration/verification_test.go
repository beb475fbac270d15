//go:build basic

// Package integration contains end-to-end tests for the salesight binary.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kpiOutput mirrors the JSON document printed by "salesight kpis --output json".
type kpiOutput struct {
	Summary struct {
		TotalRows   int `json:"total_rows"`
		CleanedRows int `json:"cleaned_rows"`
	} `json:"summary"`
	KPIs struct {
		TotalSales       decimal.Decimal `json:"total_sales"`
		TotalOrders      int             `json:"total_orders"`
		TotalQuantity    int64           `json:"total_quantity"`
		DistinctProducts int             `json:"distinct_products"`
	} `json:"kpis"`
}

// TestKPIsVerification compares the CLI totals against sums computed directly from the CSV.
func TestKPIsVerification(t *testing.T) {
	out, err := runSalesight(t, "kpis", salesFixture, "--output", "json", "--cache-backend", "none")
	require.NoError(t, err)

	var got kpiOutput
	require.NoError(t, json.Unmarshal(out, &got))

	revenue, quantity, products := sumFixture(t, filepath.Join("..", salesFixture))
	assert.True(t, revenue.Equal(got.KPIs.TotalSales), "total sales %s != %s", got.KPIs.TotalSales, revenue)
	assert.Equal(t, quantity, got.KPIs.TotalQuantity)
	assert.Equal(t, len(products), got.KPIs.DistinctProducts)
	assert.Equal(t, got.Summary.CleanedRows, got.KPIs.TotalOrders)
}

// TestGeneratedDatasetVerification writes a larger dataset and checks the product breakdown.
func TestGeneratedDatasetVerification(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "generated.csv")

	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.Write([]string{"Date", "Product", "Region", "Quantity", "Price"}))
	for i := range 120 {
		month := i%12 + 1
		product := fmt.Sprintf("P%d", i%4)
		require.NoError(t, w.Write([]string{
			fmt.Sprintf("2023-%02d-10", month), product, "North", strconv.Itoa(i%5 + 1), "2.50",
		}))
	}
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	out, err := runSalesight(t, "products", path, "--output", "json", "--cache-backend", "none")
	require.NoError(t, err)

	var got struct {
		Entries []struct {
			Key     string          `json:"key"`
			Revenue decimal.Decimal `json:"total_revenue"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(out, &got))
	require.Len(t, got.Entries, 4)

	revenue, _, _ := sumFixture(t, path)
	total := decimal.Zero
	for _, e := range got.Entries {
		total = total.Add(e.Revenue)
	}
	assert.True(t, revenue.Equal(total), "product revenue %s != %s", total, revenue)
}

// sumFixture returns revenue, quantity and the distinct products of a clean CSV file.
func sumFixture(t *testing.T, path string) (decimal.Decimal, int64, map[string]struct{}) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	revenue := decimal.Zero
	var quantity int64
	products := map[string]struct{}{}
	for _, row := range rows[1:] {
		q, err := strconv.ParseInt(row[3], 10, 64)
		require.NoError(t, err)
		price, err := decimal.NewFromString(row[4])
		require.NoError(t, err)
		revenue = revenue.Add(price.Mul(decimal.NewFromInt(q)))
		quantity += q
		products[row[1]] = struct{}{}
	}
	return revenue, quantity, products
}
