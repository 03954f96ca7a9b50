package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo/internal/adapters/mcp"
	"github.com/xvierd/pomo/internal/config"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Serve timer state, tasks, stats, and history over the Model Context
Protocol on stdin/stdout, for use by AI assistants.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			path, _ := config.GetConfigPath()
			return fmt.Errorf("the MCP server is disabled; enable it in %s", path)
		}

		ctx := setupSignalHandler()

		// Stdout carries the protocol; keep the banner off it.
		fmt.Fprintln(os.Stderr, "pomo MCP server listening on stdio")

		server := mcp.NewServer(app.state)
		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
