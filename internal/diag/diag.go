// Package diag collects the recoverable defects found while converting a
// CSL package. Parsers and the merger return a List next to their result
// instead of logging, so callers decide what to surface and tests can
// assert on exactly what was dropped.
package diag

import "fmt"

// Kind classifies one recoverable defect.
type Kind int

const (
	// LineSkipped marks a malformed directive line dropped whole.
	LineSkipped Kind = iota
	// IndexFieldSkipped marks a non-integer value inside an index directive.
	IndexFieldSkipped
	// TrianglesDropped marks index triples rejected for out-of-range corners.
	TrianglesDropped
	// FragmentSkipped marks a fragment excluded from a merge.
	FragmentSkipped
	// FragmentMissing marks a referenced mesh-source file that is absent or unreadable.
	FragmentMissing
	// TextureMissing marks a livery whose texture references all failed to resolve.
	TextureMissing
	// LiveryEmpty marks a livery with no usable geometry at all.
	LiveryEmpty
	// WriteFailed marks an output file the serializer or filesystem rejected.
	WriteFailed
	// DuplicateLivery marks a livery id declared more than once in a package.
	DuplicateLivery
	// GroupSkipped marks an index group without a livery id or fragment refs.
	GroupSkipped
	// ReadAborted marks a stream that could not be read to its end.
	ReadAborted
)

var kindNames = [...]string{
	LineSkipped:       "line skipped",
	IndexFieldSkipped: "index field skipped",
	TrianglesDropped:  "triangles dropped",
	FragmentSkipped:   "fragment skipped",
	FragmentMissing:   "fragment missing",
	TextureMissing:    "texture missing",
	LiveryEmpty:       "livery empty",
	WriteFailed:       "write failed",
	DuplicateLivery:   "duplicate livery",
	GroupSkipped:      "group skipped",
	ReadAborted:       "read aborted",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is one recorded defect. Path and Line locate it when the source is
// file- or line-scoped; N is the occurrence count for summary events and is
// at least 1.
type Event struct {
	Kind Kind
	Path string
	Line int
	N    int
	Msg  string
}

func (e Event) String() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	default:
		return e.Msg
	}
}

// List accumulates events in observation order.
type List []Event

// Addf records a single-occurrence event. line may be 0 for events that are
// not tied to one line.
func (l *List) Addf(k Kind, path string, line int, format string, args ...any) {
	*l = append(*l, Event{Kind: k, Path: path, Line: line, N: 1, Msg: fmt.Sprintf(format, args...)})
}

// Tally records one summary event standing for n occurrences.
func (l *List) Tally(k Kind, path string, n int, format string, args ...any) {
	*l = append(*l, Event{Kind: k, Path: path, N: n, Msg: fmt.Sprintf(format, args...)})
}

// Count returns the number of recorded events of kind k.
func (l List) Count(k Kind) int {
	n := 0
	for _, e := range l {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// Total returns the number of occurrences of kind k, honoring the
// multiplicity that summary events carry.
func (l List) Total(k Kind) int {
	n := 0
	for _, e := range l {
		if e.Kind != k {
			continue
		}
		if e.N > 1 {
			n += e.N
		} else {
			n++
		}
	}
	return n
}
