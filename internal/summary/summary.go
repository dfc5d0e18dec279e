// ABOUTME: Duration aggregation over a project's session log
// ABOUTME: Buckets session time into all-time, last-7-days, today and since windows
package summary

import (
	"math"
	"time"

	"github.com/harper/punchclock/internal/sessionlog"
)

// Windows holds the lower bounds of the reporting buckets. A session counts
// toward a bucket when it started at or after the bound. A zero Since
// disables that bucket.
type Windows struct {
	Today time.Time
	Week  time.Time
	Since time.Time
}

// CalendarWindows aligns the buckets to local midnight in loc: Today starts
// at midnight of now's date and Week at midnight six days before that.
func CalendarWindows(now time.Time, loc *time.Location) Windows {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	y, m, d := local.Date()
	return Windows{
		Today: time.Date(y, m, d, 0, 0, 0, 0, loc),
		Week:  time.Date(y, m, d-6, 0, 0, 0, 0, loc),
	}
}

// Totals is the result of aggregating a log.
type Totals struct {
	All      time.Duration `json:"all"`
	Week     time.Duration `json:"week"`
	Today    time.Duration `json:"today"`
	Since    time.Duration `json:"since,omitempty"`
	Sessions int           `json:"sessions"`
	Open     bool          `json:"open"`
	// LastActivity is the latest start or end timestamp seen, or zero.
	LastActivity time.Time `json:"last_activity"`
}

// Aggregate sums every session in lines as of now. Malformed lines are
// skipped; a corrupt timestamp aborts with a *sessionlog.ParseError naming
// src and the offending line.
func Aggregate(src string, lines []string, now time.Time, w Windows) (Totals, error) {
	var (
		totals                  Totals
		all, week, today, since int64
		last                    int64
	)

	nowUnix := now.Unix()
	weekUnix := w.Week.Unix()
	todayUnix := w.Today.Unix()
	sinceUnix := w.Since.Unix()

	for i, line := range lines {
		rec, err := sessionlog.ParseLine(line)
		if err != nil {
			return Totals{}, &sessionlog.ParseError{Path: src, Line: i + 1, Text: line, Err: err}
		}
		if rec.Kind == sessionlog.KindMalformed {
			continue
		}

		secs := rec.Seconds(nowUnix)
		totals.Sessions++
		all = add(all, secs)
		if rec.Start >= weekUnix {
			week = add(week, secs)
		}
		if rec.Start >= todayUnix {
			today = add(today, secs)
		}
		if !w.Since.IsZero() && rec.Start >= sinceUnix {
			since = add(since, secs)
		}

		last = max(last, rec.Start)
		if rec.Kind == sessionlog.KindClosed {
			last = max(last, rec.End)
		}
		totals.Open = rec.Kind == sessionlog.KindOpen
	}

	totals.All = Seconds(all)
	totals.Week = Seconds(week)
	totals.Today = Seconds(today)
	totals.Since = Seconds(since)
	if totals.Sessions > 0 {
		totals.LastActivity = time.Unix(last, 0)
	}
	return totals, nil
}

// maxSeconds is the largest whole-second count a time.Duration holds.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// Seconds converts a non-negative second count to a Duration, saturating at
// the largest whole-second Duration instead of overflowing.
func Seconds(n int64) time.Duration {
	if n > maxSeconds {
		n = maxSeconds
	}
	return time.Duration(n) * time.Second
}

// add sums two non-negative second counts, saturating at math.MaxInt64.
func add(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
