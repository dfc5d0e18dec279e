// ABOUTME: Append-only session log file for a single project
// ABOUTME: Loads the full history and appends open/close records in place
package sessionlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Store is an open session log. It holds the file in read+append mode for the
// duration of one action. There is no locking; concurrent writers race.
type Store struct {
	path string
	f    *os.File
	data []byte
}

// State describes whether the log's last record is an open session.
// Trailing counts the non-blank, non-record lines after that record.
type State struct {
	Open     bool
	Start    int64
	Line     int
	Trailing int
}

// Open opens (creating if absent) the log at path and reads its contents.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644) //nolint:gosec // User-owned log file
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &Store{path: path, f: f, data: data}, nil
}

// Path returns the file path of the log.
func (s *Store) Path() string {
	return s.path
}

// Lines returns the raw lines of the log as loaded, including anything
// appended through this Store since.
func (s *Store) Lines() []string {
	return SplitLines(string(s.data))
}

// State inspects the last parseable record of the log.
func (s *Store) State() (State, error) {
	lines := s.Lines()
	rec, n, err := Tail(lines)
	if err != nil {
		return State{}, &ParseError{Path: s.path, Line: n, Text: lines[n-1], Err: err}
	}
	if rec.Kind != KindOpen {
		return State{Line: n}, nil
	}
	st := State{Open: true, Start: rec.Start, Line: n}
	for _, line := range lines[n:] {
		if strings.TrimSpace(line) != "" {
			st.Trailing++
		}
	}
	return st, nil
}

// AppendOpen writes "<ts>," with no newline. If the file does not already end
// on a line boundary a newline is written first.
func (s *Store) AppendOpen(ts int64) error {
	rec := Record{Kind: KindOpen, Start: ts}.Format()
	if n := len(s.data); n > 0 && s.data[n-1] != '\n' {
		rec = "\n" + rec
	}
	return s.write(rec)
}

// AppendClose completes the open record on the last line with "<ts>\n".
// Whitespace trailing the open record is truncated first so the close lands
// on the same line. If other lines follow the open record it returns a
// *ParseError wrapping ErrOpenNotLast and writes nothing.
func (s *Store) AppendClose(ts int64) error {
	st, err := s.State()
	if err != nil {
		return err
	}
	if st.Open && st.Trailing > 0 {
		return &ParseError{Path: s.path, Line: st.Line, Text: s.Lines()[st.Line-1], Err: ErrOpenNotLast}
	}

	trimmed := len(s.data)
	for trimmed > 0 && isSpace(s.data[trimmed-1]) {
		trimmed--
	}
	if trimmed != len(s.data) {
		if err := s.f.Truncate(int64(trimmed)); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.path, err)
		}
		s.data = s.data[:trimmed]
	}
	return s.write(strconv.FormatInt(ts, 10) + "\n")
}

func (s *Store) write(text string) error {
	if _, err := s.f.WriteString(text); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	s.data = append(s.data, text...)
	return nil
}

// Close releases the underlying file.
func (s *Store) Close() error {
	return s.f.Close()
}

func isSpace(b byte) bool {
	return b == '\n' || b == '\r' || b == ' ' || b == '\t'
}
