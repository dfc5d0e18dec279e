// ABOUTME: Discovery of tracked projects in the log directory
// ABOUTME: Summarizes each log without creating or modifying files
package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harper/punchclock/internal/sessionlog"
	"github.com/harper/punchclock/internal/summary"
)

// Project is one tracked project found on disk.
type Project struct {
	Name         string        `json:"name"`
	Path         string        `json:"path"`
	Open         bool          `json:"open"`
	Sessions     int           `json:"sessions"`
	Total        time.Duration `json:"total"`
	Week         time.Duration `json:"week"`
	LastActivity time.Time     `json:"last_activity"`
	Size         int64         `json:"size"`
	Error        string        `json:"error,omitempty"`
}

// Projects lists every log under the configured directory, sorted by name.
// A log that fails to parse is still listed with Error set.
func (t *Tracker) Projects() ([]Project, error) {
	now := t.now()

	dir, err := t.cfg.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	windows := summary.CalendarWindows(now, t.loc)

	var projects []Project
	for _, entry := range entries {
		name, ok := strings.CutPrefix(entry.Name(), t.cfg.FilePrefix)
		if !ok || name == "" || entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		p := Project{Name: name, Path: path}

		if info, err := entry.Info(); err == nil {
			p.Size = info.Size()
		}

		data, err := os.ReadFile(path) //nolint:gosec // Path comes from listing the log directory
		if err != nil {
			t.logger.Warn("failed to read log", "path", path, "err", err)
			p.Error = err.Error()
			projects = append(projects, p)
			continue
		}

		totals, err := summary.Aggregate(path, sessionlog.SplitLines(string(data)), now, windows)
		if err != nil {
			t.logger.Warn("corrupt log", "path", path, "err", err)
			p.Error = err.Error()
			projects = append(projects, p)
			continue
		}

		p.Open = totals.Open
		p.Sessions = totals.Sessions
		p.Total = totals.All
		p.Week = totals.Week
		p.LastActivity = totals.LastActivity
		projects = append(projects, p)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Name < projects[j].Name
	})
	return projects, nil
}
