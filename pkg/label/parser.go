package label

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the label namespace recognized by the parser. Keys outside this
// namespace belong to other tooling and are skipped, not rejected.
const Prefix = "traefik."

// ErrSkip reports a label key outside the recognized namespace. Callers are
// expected to test for it with errors.Is and ignore the label.
var ErrSkip = errors.New("label key outside the traefik namespace")

// Segment is one addressable element of a parsed label key: a name, and an
// optional list index when the raw segment carried a bracket suffix.
type Segment struct {
	Name  string
	Index int // -1 when the segment is not indexed
}

// Indexed reports whether the segment addresses a list position.
func (s Segment) Indexed() bool {
	return s.Index >= 0
}

func (s Segment) String() string {
	if s.Indexed() {
		return fmt.Sprintf("%s[%d]", s.Name, s.Index)
	}
	return s.Name
}

// SyntaxError describes a malformed segment in a key that is inside the
// recognized namespace.
type SyntaxError struct {
	Key     string // full raw label key
	Segment string // offending raw segment, empty when the whole key is at fault
	Reason  string
}

func (e *SyntaxError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("malformed label key %q: segment %q: %s", e.Key, e.Segment, e.Reason)
	}
	return fmt.Sprintf("malformed label key %q: %s", e.Key, e.Reason)
}

// Parse decomposes a raw label key into its ordered path segments, with the
// namespace prefix stripped. It returns ErrSkip for keys outside the
// namespace and a *SyntaxError for malformed keys inside it. Parse is pure:
// identical input always yields identical output.
func Parse(key string) ([]Segment, error) {
	if !strings.HasPrefix(key, Prefix) {
		return nil, ErrSkip
	}

	rest := key[len(Prefix):]
	if rest == "" {
		return nil, &SyntaxError{Key: key, Reason: "empty path after namespace prefix"}
	}

	var segments []Segment
	for _, raw := range splitSegments(rest) {
		seg, err := parseSegment(key, raw)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

// splitSegments splits on '.' outside bracket groups so that a malformed
// bracket group stays attached to its segment for error reporting.
func splitSegments(s string) []string {
	var (
		parts   []string
		start   int
		bracket bool
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			bracket = true
		case ']':
			bracket = false
		case '.':
			if !bracket {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func parseSegment(key, raw string) (Segment, error) {
	if raw == "" {
		return Segment{}, &SyntaxError{Key: key, Reason: "empty segment"}
	}

	open := strings.IndexByte(raw, '[')
	if open < 0 {
		if strings.IndexByte(raw, ']') >= 0 {
			return Segment{}, &SyntaxError{Key: key, Segment: raw, Reason: "unmatched closing bracket"}
		}
		return Segment{Name: raw, Index: -1}, nil
	}

	if open == 0 {
		return Segment{}, &SyntaxError{Key: key, Segment: raw, Reason: "index without a segment name"}
	}
	if raw[len(raw)-1] != ']' {
		return Segment{}, &SyntaxError{Key: key, Segment: raw, Reason: "bracket group must terminate the segment"}
	}

	name := raw[:open]
	digits := raw[open+1 : len(raw)-1]
	if strings.ContainsAny(name, "[]") || strings.ContainsAny(digits, "[]") {
		return Segment{}, &SyntaxError{Key: key, Segment: raw, Reason: "nested or unmatched bracket"}
	}
	if digits == "" {
		return Segment{}, &SyntaxError{Key: key, Segment: raw, Reason: "empty index"}
	}

	index, err := strconv.Atoi(digits)
	if err != nil || index < 0 {
		return Segment{}, &SyntaxError{Key: key, Segment: raw, Reason: "index must be a non-negative integer"}
	}

	return Segment{Name: name, Index: index}, nil
}
