// ABOUTME: MCP server implementation for punchclock
// ABOUTME: Provides tools and resources for AI assistants to drive project clocks
package mcp

import (
	"context"

	"github.com/harper/punchclock/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with punchclock-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
}

// NewServer creates a new punchclock MCP server backed by tr.
func NewServer(tr *tracker.Tracker) *Server {
	impl := &mcp.Implementation{
		Name:    "punchclock",
		Version: "0.1.0",
	}

	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		tracker:   tr,
	}

	// Register components
	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
