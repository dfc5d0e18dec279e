// ABOUTME: Session record parsing for the line-based project log
// ABOUTME: Classifies each line as an open, closed, or malformed record
package sessionlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant a log line parsed into.
type Kind int

const (
	// KindMalformed lines (blank, or not exactly two comma-separated fields) are
	// tolerated in the file and ignored by aggregation.
	KindMalformed Kind = iota
	// KindOpen is a started session with no end yet: "<start>,".
	KindOpen
	// KindClosed is a finished session: "<start>,<end>".
	KindClosed
)

func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open"
	case KindClosed:
		return "closed"
	default:
		return "malformed"
	}
}

// Record is one parsed line of a session log. Start and End are Unix epoch
// seconds; End is only meaningful for Closed records.
type Record struct {
	Kind  Kind
	Start int64
	End   int64
}

var (
	// ErrBadTimestamp is wrapped by every timestamp parse failure.
	ErrBadTimestamp = errors.New("bad unix timestamp")
	// ErrOpenNotLast means non-record lines follow the open session, so it
	// cannot be closed in place.
	ErrOpenNotLast = errors.New("open session is followed by non-record lines")
)

// ParseLine parses a single log line. A line with exactly two fields whose
// timestamps do not parse is corrupt and returns an error wrapping
// ErrBadTimestamp; anything that is not two fields is Malformed.
func ParseLine(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 2 {
		return Record{Kind: KindMalformed}, nil
	}

	start, err := parseTimestamp(fields[0])
	if err != nil {
		return Record{}, err
	}

	endField := strings.TrimSpace(fields[1])
	if endField == "" {
		return Record{Kind: KindOpen, Start: start}, nil
	}

	end, err := parseTimestamp(endField)
	if err != nil {
		return Record{}, err
	}
	return Record{Kind: KindClosed, Start: start, End: end}, nil
}

// Format encodes the record the way it is stored. Open records carry no
// trailing newline so the closing timestamp can be appended in place.
func (r Record) Format() string {
	switch r.Kind {
	case KindOpen:
		return fmt.Sprintf("%d,", r.Start)
	case KindClosed:
		return fmt.Sprintf("%d,%d\n", r.Start, r.End)
	default:
		return ""
	}
}

// Seconds returns the span of the record in seconds, using now as the end of
// an open record. Negative spans saturate to zero.
func (r Record) Seconds(now int64) int64 {
	var end int64
	switch r.Kind {
	case KindOpen:
		end = now
	case KindClosed:
		end = r.End
	default:
		return 0
	}
	if end < r.Start {
		return 0
	}
	return end - r.Start
}

func parseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrBadTimestamp, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w %q: negative", ErrBadTimestamp, s)
	}
	return v, nil
}

// ParseError reports a corrupt record, naming the log file and line.
type ParseError struct {
	Path string
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v (line %q)", e.Path, e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Tail returns the last parseable record and its 1-based line number. Blank
// and malformed lines are skipped. An empty log yields a KindMalformed record
// at line 0. A session is currently open exactly when the returned record is
// KindOpen.
func Tail(lines []string) (Record, int, error) {
	for i := len(lines) - 1; i >= 0; i-- {
		rec, err := ParseLine(lines[i])
		if err != nil {
			return Record{}, i + 1, err
		}
		if rec.Kind == KindMalformed {
			continue
		}
		return rec, i + 1, nil
	}
	return Record{Kind: KindMalformed}, 0, nil
}

// SplitLines splits raw log content into lines, dropping the empty element
// left after a trailing newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
