// ABOUTME: Diagnostic logger setup shared by the CLI and MCP server
// ABOUTME: Wraps charmbracelet/log with a verbose switch
package logging

import (
	"io"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w. Only warnings and errors are shown
// unless verbose is set.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "punchclock",
		Level:           level,
		ReportTimestamp: verbose,
	})
}

// Discard returns a logger that drops everything, for tests and library use.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
