// ABOUTME: Tests for the append-only session log file
// ABOUTME: Validates creation, open/close appends, and tail repair
package sessionlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	return string(data)
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".punchclock-demo")

	s := openStore(t, path)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if len(s.Lines()) != 0 {
		t.Errorf("expected no lines, got %q", s.Lines())
	}
	st, err := s.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if st.Open {
		t.Error("new log should not be open")
	}
}

func TestOpenFailsOnDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(dir); err == nil {
		t.Fatal("expected error opening a directory as a log")
	}
}

func TestAppendPairs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	s := openStore(t, path)

	pairs := [][2]int64{{1000, 1100}, {2000, 2500}, {3000, 3001}}
	for _, p := range pairs {
		if err := s.AppendOpen(p[0]); err != nil {
			t.Fatalf("AppendOpen failed: %v", err)
		}
		st, err := s.State()
		if err != nil {
			t.Fatalf("State failed: %v", err)
		}
		if !st.Open || st.Start != p[0] {
			t.Fatalf("expected open at %d, got %+v", p[0], st)
		}
		if err := s.AppendClose(p[1]); err != nil {
			t.Fatalf("AppendClose failed: %v", err)
		}
	}

	want := "1000,1100\n2000,2500\n3000,3001\n"
	if got := readFile(t, path); got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	// Reopen and confirm nothing is open and every record is closed.
	_ = s.Close()
	s2 := openStore(t, path)
	for i, line := range s2.Lines() {
		rec, err := ParseLine(line)
		if err != nil {
			t.Fatalf("line %d: %v", i+1, err)
		}
		if rec.Kind != KindClosed {
			t.Errorf("line %d: got %v, want closed", i+1, rec.Kind)
		}
	}
	st, err := s2.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if st.Open {
		t.Error("expected no open session after complete pairs")
	}
}

func TestAppendOpenStartsNewLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	// Legacy files end closed records with "\n\r".
	if err := os.WriteFile(path, []byte("1000,1100\n\r"), 0644); err != nil { //nolint:gosec // Test file permissions
		t.Fatal(err)
	}

	s := openStore(t, path)
	if err := s.AppendOpen(2000); err != nil {
		t.Fatalf("AppendOpen failed: %v", err)
	}

	if got := readFile(t, path); got != "1000,1100\n\r\n2000," {
		t.Errorf("got %q", got)
	}
	st, err := s.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if !st.Open || st.Start != 2000 {
		t.Errorf("expected open at 2000, got %+v", st)
	}
}

func TestAppendCloseTrimsTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	if err := os.WriteFile(path, []byte("1000,1100\n2000,\n"), 0644); err != nil { //nolint:gosec // Test file permissions
		t.Fatal(err)
	}

	s := openStore(t, path)
	if err := s.AppendClose(2100); err != nil {
		t.Fatalf("AppendClose failed: %v", err)
	}

	if got := readFile(t, path); got != "1000,1100\n2000,2100\n" {
		t.Errorf("got %q", got)
	}
}

func TestStateCorruptTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	if err := os.WriteFile(path, []byte("1000,1100\nabc,"), 0644); err != nil { //nolint:gosec // Test file permissions
		t.Fatal(err)
	}

	s := openStore(t, path)
	_, err := s.State()
	if err == nil {
		t.Fatal("expected error for corrupt tail")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Path != path || perr.Line != 2 || perr.Text != "abc," {
		t.Errorf("unexpected ParseError %+v", perr)
	}
}

func TestOpenFollowedByNoteCannotClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log")
	if err := os.WriteFile(path, []byte("1000,\nnote\n"), 0644); err != nil { //nolint:gosec // Test file permissions
		t.Fatal(err)
	}

	s := openStore(t, path)
	st, err := s.State()
	if err != nil {
		t.Fatalf("State failed: %v", err)
	}
	if !st.Open || st.Start != 1000 || st.Line != 1 || st.Trailing != 1 {
		t.Errorf("unexpected state %+v", st)
	}

	err = s.AppendClose(2000)
	if !errors.Is(err, ErrOpenNotLast) {
		t.Fatalf("expected ErrOpenNotLast, got %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Line != 1 {
		t.Errorf("expected *ParseError at line 1, got %v", err)
	}
	if got := readFile(t, path); got != "1000,\nnote\n" {
		t.Errorf("log changed: %q", got)
	}
}
