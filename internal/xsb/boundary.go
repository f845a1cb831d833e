package xsb

import "strings"

// sectionToken opens a livery group in the token-keyed dialect and carries
// the aircraft type on the same line.
const sectionToken = "OBJ8_AIRCRAFT"

// boundary tells the parser where one livery group ends and the next
// begins. The two index dialects in circulation disagree: one starts each
// group with an OBJ8_AIRCRAFT line, the other separates groups with blank
// lines.
type boundary interface {
	// starts reports whether the trimmed line opens a new group.
	starts(line string) bool
}

type sectionBoundary struct{}

func (sectionBoundary) starts(line string) bool {
	if !strings.HasPrefix(line, sectionToken) {
		return false
	}
	rest := line[len(sectionToken):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

type blankBoundary struct{}

func (blankBoundary) starts(line string) bool {
	return line == ""
}

// DialectName reports which dialect sniffing picks for an index document.
func DialectName(data []byte) string {
	if _, ok := sniff(string(data)).(sectionBoundary); ok {
		return "section-keyed"
	}
	return "blank-line-separated"
}

// sniff picks the boundary strategy for one index document: token-keyed
// when any line opens with the section token, blank-line-separated
// otherwise.
func sniff(data string) boundary {
	for _, line := range strings.Split(data, "\n") {
		if (sectionBoundary{}).starts(strings.TrimSpace(line)) {
			return sectionBoundary{}
		}
	}
	return blankBoundary{}
}
