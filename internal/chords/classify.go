package chords

import (
	"regexp"
	"strings"
)

// LineKind is the classification of a single line.
type LineKind int

const (
	PlainLine LineKind = iota
	ChordLine
	SectionMarker
)

func (k LineKind) String() string {
	switch k {
	case ChordLine:
		return "chord"
	case SectionMarker:
		return "section"
	default:
		return "plain"
	}
}

// sectionPattern matches a whole trimmed line of the form "[...]".
var sectionPattern = regexp.MustCompile(`^\[.*\]$`)

// Classify returns the kind of line given the known chord names.
// Section markers take precedence over chord lines.
func Classify(line string, keys KeySet) LineKind {
	if IsSectionMarker(line) {
		return SectionMarker
	}
	if IsChordLine(line, keys) {
		return ChordLine
	}
	return PlainLine
}

// IsSectionMarker reports whether the trimmed line is bracket-delimited.
func IsSectionMarker(line string) bool {
	return sectionPattern.MatchString(strings.TrimSpace(line))
}

// IsChordLine reports whether line has at least one token and every token
// is a known chord. Blank lines are never chord lines.
func IsChordLine(line string, keys KeySet) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !keys.Has(f) {
			return false
		}
	}
	return true
}
