// ABOUTME: MCP prompt definitions for punchclock
// ABOUTME: Provides static context to AI assistants about punchclock capabilities
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "punchclock-getting-started",
		Description: "Introduction to punchclock and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		content := `Punchclock tracks time per project with a start/stop clock.

When to use punchclock:
- User starts working on a project ("starting on the invoice app") -> begin_clock
- User stops or switches projects -> end_clock, then begin_clock for the next one
- User asks how much time went into something -> summarize_project

Notes:
- Only one session per project can run at a time; begin_clock on a running
  clock is rejected without changing anything.
- Project names are used as file names; keep them short and without slashes.
- The punchclock://projects resource lists every tracked project.`

		return &mcp.GetPromptResult{
			Description: "Getting started with punchclock",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: content,
					},
				},
			},
		}, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
