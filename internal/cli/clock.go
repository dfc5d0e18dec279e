// ABOUTME: Clock command for beginning, ending and summarizing a project
// ABOUTME: Maps the b/e/s action argument onto tracker operations
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fatih/color"
	"github.com/harper/punchclock/internal/summary"
	"github.com/harper/punchclock/internal/tracker"
	"github.com/spf13/cobra"
)

type action int

const (
	actionBegin action = iota
	actionEnd
	actionSummarize
)

func parseAction(s string) (action, bool) {
	switch s {
	case "b", "begin":
		return actionBegin, true
	case "e", "end":
		return actionEnd, true
	case "s", "summary", "summarize":
		return actionSummarize, true
	}
	return 0, false
}

var (
	clockSince string
)

var clockCmd = &cobra.Command{
	Use:     "clock <project> <action>",
	Aliases: []string{"c"},
	Short:   "Begin, end, or summarize a project's clock",
	Long: `Begin, end, or summarize the clock for a project.

Actions:
  b = begin clock
  e = end clock
  s = summarize time

The short form "punchclock <project> <action>" works for any project name,
including names such as "projects" or "mcp" that match a command.

Example: punchclock project1 b`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 2 {
			return &usageError{cmd: cmd, msg: "incorrect arguments"}
		}
		act, ok := parseAction(args[1])
		if !ok {
			return &usageError{cmd: cmd, msg: fmt.Sprintf("unknown option %q", args[1])}
		}
		if act != actionSummarize && clockSince != "" {
			return &usageError{cmd: cmd, msg: "--since only applies to the summarize action"}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]
		act, _ := parseAction(args[1])

		tr, err := newTracker(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch act {
		case actionBegin:
			return runBegin(out, tr, project)
		case actionEnd:
			return runEnd(out, tr, project)
		default:
			var since *time.Time
			if clockSince != "" {
				t, err := dateparse.ParseIn(clockSince, tr.Location())
				if err != nil {
					return fmt.Errorf("invalid --since date: %w", err)
				}
				since = &t
			}
			return runSummarize(out, tr, project, since)
		}
	},
}

func runBegin(out io.Writer, tr *tracker.Tracker, project string) error {
	_, err := tr.Begin(project)
	if errors.Is(err, tracker.ErrAlreadyStarted) {
		_, _ = color.New(color.FgYellow).Fprintln(out, "Clock is already started!")
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintln(out, "Clock started.")
	return nil
}

func runEnd(out io.Writer, tr *tracker.Tracker, project string) error {
	res, err := tr.End(project)
	if errors.Is(err, tracker.ErrNotStarted) {
		_, _ = color.New(color.FgYellow).Fprintln(out, "Clock has not been started!")
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintln(out, "Clock stopped.")
	printDuration(out, "Time tracked this session:", res.Session)
	return nil
}

func runSummarize(out io.Writer, tr *tracker.Tracker, project string, since *time.Time) error {
	res, err := tr.Summarize(project, since)
	if err != nil {
		return err
	}

	printDuration(out, "Total time tracked:", res.All)
	printDuration(out, "Last 7 days:", res.Week)
	printDuration(out, "Today:", res.Today)
	if res.From != nil {
		printDuration(out, fmt.Sprintf("Since %s:", res.From.Format("2006-01-02 15:04")), res.Since)
	}
	if res.Open {
		_, _ = color.New(color.FgCyan).Fprintln(out, "Clock is running.")
	}
	return nil
}

func printDuration(out io.Writer, prefix string, d time.Duration) {
	fmt.Fprintf(out, "%s %s.\n", prefix, summary.FormatDuration(d))
}

func init() {
	clockCmd.Flags().StringVar(&clockSince, "since", "", "Also total sessions started since this date (natural language or ISO)")
	rootCmd.AddCommand(clockCmd)
}
