package cmd

import (
	"fmt"

	"github.com/huangsam/salesight/internal/iocache"
	"github.com/huangsam/salesight/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [data-file]",
	Short: "Start the Salesight MCP server",
	Long:  `Launch an MCP server that allows AI agents to query sales KPIs, product scores, forecasts and rejected rows via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return sharedSetup(rootCtx, cmd, args)
		}
		// Without a default data file every tool call must pass input_path
		if err := displaySetup(cmd, args); err != nil {
			return err
		}
		if err := iocache.InitCaching(cfg.CacheBackend, cfg.CacheDBConnect, cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
