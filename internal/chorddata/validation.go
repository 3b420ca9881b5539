package chorddata

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/alnah/go-chordsheet/internal/chords"
)

// Entry limits.
const (
	MaxChordNameLength = 32
	MaxFingeringLength = 64
)

// ValidateEntry checks a single chord entry.
// A name with whitespace or a bracketed name would never be classified as
// a chord, so both are rejected.
func ValidateEntry(name, fingering string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidChord)
	}
	if len(name) > MaxChordNameLength {
		return fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidChord, name, MaxChordNameLength)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidChord, name)
	}
	if chords.IsSectionMarker(name) {
		return fmt.Errorf("%w: %q looks like a section marker", ErrInvalidChord, name)
	}
	if fingering == "" {
		return fmt.Errorf("%w: %q has no fingering", ErrInvalidChord, name)
	}
	if len(fingering) > MaxFingeringLength {
		return fmt.Errorf("%w: %q fingering exceeds %d bytes", ErrInvalidChord, name, MaxFingeringLength)
	}
	return nil
}

// Validate checks every entry of d. Entries are visited in sorted order so
// the reported error is stable.
func Validate(d chords.MapDictionary) error {
	if len(d) == 0 {
		return ErrEmptyDictionary
	}
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ValidateEntry(name, d[name]); err != nil {
			return err
		}
	}
	return nil
}
