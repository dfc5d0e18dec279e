// ABOUTME: MCP tool implementations for punchclock
// ABOUTME: Begin, end and summarize a project's clock
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/harper/punchclock/internal/summary"
	"github.com/harper/punchclock/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ProjectInput names the project a tool acts on.
type ProjectInput struct {
	Project string `json:"project" jsonschema:"The project name whose clock to use"`
}

// BeginOutput defines the output for begin_clock tool.
type BeginOutput struct {
	Project string `json:"project" jsonschema:"The project name"`
	Started bool   `json:"started" jsonschema:"False when the clock was already running"`
	Start   string `json:"start,omitempty" jsonschema:"When the session started (RFC 3339)"`
}

// EndOutput defines the output for end_clock tool.
type EndOutput struct {
	Project        string `json:"project" jsonschema:"The project name"`
	Stopped        bool   `json:"stopped" jsonschema:"False when the clock was not running"`
	SessionSeconds int64  `json:"session_seconds,omitempty" jsonschema:"Length of the session just ended"`
	Session        string `json:"session,omitempty" jsonschema:"Human readable session length"`
}

// SummarizeInput defines the input for summarize_project tool.
type SummarizeInput struct {
	Project string `json:"project" jsonschema:"The project name to summarize"`
	Since   string `json:"since,omitempty" jsonschema:"Optional start date for an extra total (natural language or ISO)"`
}

// SummarizeOutput defines the output for summarize_project tool.
type SummarizeOutput struct {
	Project      string `json:"project"`
	TotalSeconds int64  `json:"total_seconds"`
	WeekSeconds  int64  `json:"week_seconds"`
	TodaySeconds int64  `json:"today_seconds"`
	SinceSeconds int64  `json:"since_seconds,omitempty"`
	Sessions     int    `json:"sessions"`
	Running      bool   `json:"running"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "begin_clock",
		Description: "Start the clock for a project. Use this when the user says they are starting work on something.",
	}, s.handleBegin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "end_clock",
		Description: "Stop the running clock for a project and report how long the session lasted.",
	}, s.handleEnd)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "summarize_project",
		Description: "Report time tracked for a project: all time, the last 7 days, and today.",
	}, s.handleSummarize)
}

func (s *Server) handleBegin(ctx context.Context, req *mcp.CallToolRequest, input ProjectInput) (*mcp.CallToolResult, BeginOutput, error) {
	output := BeginOutput{Project: input.Project}

	res, err := s.tracker.Begin(input.Project)
	if errors.Is(err, tracker.ErrAlreadyStarted) {
		return textResult(fmt.Sprintf("Clock for %s is already started.", input.Project)), output, nil
	}
	if err != nil {
		return nil, output, err
	}

	output.Started = true
	output.Start = res.Start.Format(time.RFC3339)
	return textResult(fmt.Sprintf("Clock started for %s at %s.", input.Project, output.Start)), output, nil
}

func (s *Server) handleEnd(ctx context.Context, req *mcp.CallToolRequest, input ProjectInput) (*mcp.CallToolResult, EndOutput, error) {
	output := EndOutput{Project: input.Project}

	res, err := s.tracker.End(input.Project)
	if errors.Is(err, tracker.ErrNotStarted) {
		return textResult(fmt.Sprintf("Clock for %s has not been started.", input.Project)), output, nil
	}
	if err != nil {
		return nil, output, err
	}

	output.Stopped = true
	output.SessionSeconds = int64(res.Session / time.Second)
	output.Session = summary.FormatDuration(res.Session)
	return textResult(fmt.Sprintf("Clock stopped for %s. Time tracked this session: %s.", input.Project, output.Session)), output, nil
}

func (s *Server) handleSummarize(ctx context.Context, req *mcp.CallToolRequest, input SummarizeInput) (*mcp.CallToolResult, SummarizeOutput, error) {
	output := SummarizeOutput{Project: input.Project}

	var since *time.Time
	if input.Since != "" {
		t, err := dateparse.ParseIn(input.Since, s.tracker.Location())
		if err != nil {
			return nil, output, fmt.Errorf("invalid since date: %w", err)
		}
		since = &t
	}

	res, err := s.tracker.Summarize(input.Project, since)
	if err != nil {
		return nil, output, err
	}

	output.TotalSeconds = int64(res.All / time.Second)
	output.WeekSeconds = int64(res.Week / time.Second)
	output.TodaySeconds = int64(res.Today / time.Second)
	output.SinceSeconds = int64(res.Since / time.Second)
	output.Sessions = res.Sessions
	output.Running = res.Open

	text := fmt.Sprintf("Total time tracked: %s.\nLast 7 days: %s.\nToday: %s.",
		summary.FormatDuration(res.All), summary.FormatDuration(res.Week), summary.FormatDuration(res.Today))
	if since != nil {
		text += fmt.Sprintf("\nSince %s: %s.", since.Format("2006-01-02"), summary.FormatDuration(res.Since))
	}
	return textResult(text), output, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
