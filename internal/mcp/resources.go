// ABOUTME: MCP resource implementations for punchclock
// ABOUTME: Exposes the list of tracked projects as JSON
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const projectsURI = "punchclock://projects"

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	projects := &mcp.Resource{
		URI:         projectsURI,
		Name:        "Projects",
		Description: "Every tracked project with running state, totals and last activity",
		MIMEType:    "application/json",
	}
	s.mcpServer.AddResource(projects, s.handleProjects)
}

// handleProjects implements the projects resource.
func (s *Server) handleProjects(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	projects, err := s.tracker.Projects()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      projectsURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
