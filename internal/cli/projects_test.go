// ABOUTME: Unit tests for the projects command
// ABOUTME: Tests table and JSON listings of tracked projects
package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProjectsCommand(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, out, _ := setupCLI(t)

		if err := run([]string{"projects"}); err != nil {
			t.Fatalf("projects failed: %v", err)
		}
		if !strings.Contains(out.String(), "No projects tracked yet.") {
			t.Errorf("expected empty message, got: %s", out.String())
		}
	})

	t.Run("table", func(t *testing.T) {
		_, out, _ := setupCLI(t)

		if err := run([]string{"writing", "b"}); err != nil {
			t.Fatalf("begin failed: %v", err)
		}
		out.Reset()

		if err := run([]string{"ls"}); err != nil {
			t.Fatalf("projects failed: %v", err)
		}
		output := out.String()
		if !strings.Contains(output, "writing") || !strings.Contains(output, "running") {
			t.Errorf("expected running project in table, got: %s", output)
		}
	})

	t.Run("json", func(t *testing.T) {
		_, out, _ := setupCLI(t)

		setNow(t, 1000)
		if err := run([]string{"writing", "b"}); err != nil {
			t.Fatalf("begin failed: %v", err)
		}
		setNow(t, 1600)
		if err := run([]string{"writing", "e"}); err != nil {
			t.Fatalf("end failed: %v", err)
		}
		out.Reset()

		if err := run([]string{"projects", "--json"}); err != nil {
			t.Fatalf("projects failed: %v", err)
		}

		var got []struct {
			Name  string `json:"name"`
			Open  bool   `json:"open"`
			Total int64  `json:"total"`
		}
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out.String())
		}
		if len(got) != 1 || got[0].Name != "writing" || got[0].Open {
			t.Fatalf("unexpected projects: %+v", got)
		}
		if got[0].Total != int64(600*1e9) {
			t.Errorf("got total %d, want 600s in nanoseconds", got[0].Total)
		}
	})
}
