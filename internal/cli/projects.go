// ABOUTME: Projects command for listing tracked projects
// ABOUTME: Supports table and JSON output formats
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/harper/punchclock/internal/summary"
	"github.com/spf13/cobra"
)

var (
	projectsJSONOutput bool
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"ls"},
	Short:   "List tracked projects",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr, err := newTracker(cmd)
		if err != nil {
			return err
		}

		projects, err := tr.Projects()
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		out := cmd.OutOrStdout()
		if projectsJSONOutput {
			data, err := json.MarshalIndent(projects, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		if len(projects) == 0 {
			fmt.Fprintln(out, "No projects tracked yet.")
			return nil
		}

		// Print table
		fmt.Fprintln(out, "Project\t\tStatus\t\tTotal\t\tLast 7 days\tLast active")
		fmt.Fprintln(out, "-------\t\t------\t\t-----\t\t-----------\t-----------")
		for _, p := range projects {
			if p.Error != "" {
				fmt.Fprintf(out, "%s\t\tcorrupt\t\t-\t\t-\t\t%s\n", p.Name, humanize.Bytes(uint64(p.Size)))
				continue
			}
			status := "stopped"
			if p.Open {
				status = "running"
			}
			lastActive := "never"
			if !p.LastActivity.IsZero() {
				lastActive = humanize.Time(p.LastActivity)
			}
			fmt.Fprintf(out, "%s\t\t%s\t\t%s\t\t%s\t\t%s\n",
				p.Name, status, summary.FormatShort(p.Total), summary.FormatShort(p.Week), lastActive)
		}
		return nil
	},
}

func init() {
	projectsCmd.Flags().BoolVar(&projectsJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(projectsCmd)
}
