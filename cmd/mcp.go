package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xvierd/mindit-cli/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes the activity timer, the report and the Mind It Bot chat as tools.
Sessions started through the server live as long as the server process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return fmt.Errorf("MCP server is disabled; enable it with \"mindit config set mcp.enabled true\"")
		}

		// stdout carries the protocol.
		fmt.Fprintln(os.Stderr, "Starting MCP server on stdio. Press Ctrl+C to stop.")

		server := mcp.NewServer(app.sessions, app.chat)
		if err := server.Start(cmd.Context()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
