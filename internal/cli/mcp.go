// ABOUTME: MCP subcommand for running the punchclock MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"github.com/harper/punchclock/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the punchclock MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to begin, end and summarize project clocks over stdio.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker(cmd)
		if err != nil {
			return err
		}

		server := mcp.NewServer(tr)
		return server.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
