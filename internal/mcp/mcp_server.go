// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/salesight/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Salesight MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Salesight Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	inputPath := mcp.WithString("input_path", mcp.Description("Path to a .csv, .xlsx or .parquet sales file (defaults to the file the server was started with)."))

	// --- 1. Tool: get_kpis ---
	s.AddTool(mcp.NewTool("get_kpis",
		mcp.WithDescription("Compute headline sales metrics: total sales, orders, average order value, top products and regions."),
		inputPath,
	), h.handleGetKPIs)

	// --- 2. Tool: get_product_scores ---
	s.AddTool(mcp.NewTool("get_product_scores",
		mcp.WithDescription("Rank products by a weighted score of normalized revenue, quantity and order count."),
		inputPath,
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetProductScores)

	// --- 3. Tool: get_forecast ---
	s.AddTool(mcp.NewTool("get_forecast",
		mcp.WithDescription("Fit a linear trend to monthly revenue and project it forward."),
		inputPath,
		mcp.WithNumber("horizon", mcp.Description("Number of months to project.")),
		mcp.WithBoolean("clamp", mcp.Description("Clamp negative projections to zero.")),
	), h.handleGetForecast)

	// --- 4. Tool: get_rejections ---
	s.AddTool(mcp.NewTool("get_rejections",
		mcp.WithDescription("List input rows rejected during cleaning with the reason for each."),
		inputPath,
	), h.handleGetRejections)

	return s
}

// StartMCPServer starts the Salesight MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
