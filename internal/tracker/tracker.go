// ABOUTME: Clock actions for a project: begin, end, summarize and listing
// ABOUTME: Captures "now" once per action and drives the session log store
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harper/punchclock/internal/config"
	"github.com/harper/punchclock/internal/logging"
	"github.com/harper/punchclock/internal/sessionlog"
	"github.com/harper/punchclock/internal/summary"
)

var (
	// ErrAlreadyStarted is returned by Begin when a session is open.
	ErrAlreadyStarted = errors.New("clock is already started")
	// ErrNotStarted is returned by End when no session is open.
	ErrNotStarted = errors.New("clock has not been started")
	// ErrNoProject is returned when the project name is empty.
	ErrNoProject = errors.New("project name required")
)

// Tracker runs clock actions against the logs addressed by a Config.
type Tracker struct {
	cfg    *config.Config
	loc    *time.Location
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Tracker) {
		t.logger = logger
	}
}

// New creates a tracker for cfg.
func New(cfg *config.Config, opts ...Option) (*Tracker, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	t := &Tracker{
		cfg:    cfg,
		loc:    loc,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Location returns the timezone used for calendar windows.
func (t *Tracker) Location() *time.Location {
	return t.loc
}

// BeginResult describes a started session.
type BeginResult struct {
	Project string    `json:"project"`
	Path    string    `json:"path"`
	Start   time.Time `json:"start"`
}

// EndResult describes a stopped session.
type EndResult struct {
	Project string        `json:"project"`
	Path    string        `json:"path"`
	Start   time.Time     `json:"start"`
	End     time.Time     `json:"end"`
	Session time.Duration `json:"session"`
}

// SummaryResult holds a project's totals as of Now.
type SummaryResult struct {
	Project string     `json:"project"`
	Path    string     `json:"path"`
	Now     time.Time  `json:"now"`
	From    *time.Time `json:"from,omitempty"`
	summary.Totals
}

// Begin appends an open record for project. It returns ErrAlreadyStarted,
// leaving the log untouched, when the last record is still open.
func (t *Tracker) Begin(project string) (*BeginResult, error) {
	now := t.now()

	store, err := t.open(project)
	if err != nil {
		return nil, err
	}
	defer t.closeStore(store)

	st, err := store.State()
	if err != nil {
		return nil, err
	}
	if st.Open {
		t.logger.Debug("begin rejected", "project", project, "start", st.Start)
		return nil, ErrAlreadyStarted
	}

	if err := store.AppendOpen(now.Unix()); err != nil {
		return nil, err
	}
	t.logger.Debug("clock started", "project", project, "path", store.Path(), "start", now.Unix())

	return &BeginResult{Project: project, Path: store.Path(), Start: time.Unix(now.Unix(), 0)}, nil
}

// End closes the open record for project. It returns ErrNotStarted, leaving
// the log untouched, when nothing is open.
func (t *Tracker) End(project string) (*EndResult, error) {
	now := t.now()

	store, err := t.open(project)
	if err != nil {
		return nil, err
	}
	defer t.closeStore(store)

	st, err := store.State()
	if err != nil {
		return nil, err
	}
	if !st.Open {
		t.logger.Debug("end rejected", "project", project)
		return nil, ErrNotStarted
	}

	if err := store.AppendClose(now.Unix()); err != nil {
		return nil, err
	}
	rec := sessionlog.Record{Kind: sessionlog.KindClosed, Start: st.Start, End: now.Unix()}
	t.logger.Debug("clock stopped", "project", project, "path", store.Path(), "start", st.Start, "end", rec.End)

	return &EndResult{
		Project: project,
		Path:    store.Path(),
		Start:   time.Unix(rec.Start, 0),
		End:     time.Unix(rec.End, 0),
		Session: summary.Seconds(rec.Seconds(rec.End)),
	}, nil
}

// Summarize aggregates project's log as of now. A non-nil since adds a
// bucket for sessions started at or after it.
func (t *Tracker) Summarize(project string, since *time.Time) (*SummaryResult, error) {
	now := t.now()

	store, err := t.open(project)
	if err != nil {
		return nil, err
	}
	defer t.closeStore(store)

	windows := summary.CalendarWindows(now, t.loc)
	if since != nil {
		windows.Since = *since
	}

	totals, err := summary.Aggregate(store.Path(), store.Lines(), now, windows)
	if err != nil {
		return nil, err
	}
	t.logger.Debug("summarized", "project", project, "sessions", totals.Sessions, "all", totals.All)

	return &SummaryResult{
		Project: project,
		Path:    store.Path(),
		Now:     now,
		From:    since,
		Totals:  totals,
	}, nil
}

func (t *Tracker) open(project string) (*sessionlog.Store, error) {
	if project == "" {
		return nil, ErrNoProject
	}
	path, err := t.cfg.LogPath(project)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve log path: %w", err)
	}
	return sessionlog.Open(path)
}

func (t *Tracker) closeStore(store *sessionlog.Store) {
	if err := store.Close(); err != nil {
		t.logger.Warn("failed to close log", "path", store.Path(), "err", err)
	}
}
