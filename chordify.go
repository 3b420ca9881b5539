package chordsheet

import (
	"fmt"

	"github.com/alnah/go-chordsheet/internal/chorddata"
	"github.com/alnah/go-chordsheet/internal/chords"
)

// Dictionary maps chord names to finger positionings.
type Dictionary = chords.Dictionary

// MapDictionary is a map-backed Dictionary.
type MapDictionary = chords.MapDictionary

// KeySet is the set of names recognized as chords.
type KeySet = chords.KeySet

// Token is a maximal run of non-whitespace characters on a line.
type Token = chords.Token

// LineKind is the classification of a single line.
type LineKind = chords.LineKind

// Wrapper is the markup pair put around the first line of a song block.
type Wrapper = chords.Wrapper

// LineInfo describes how one line of a document was classified.
type LineInfo = chords.LineInfo

// ChordOption configures Chordify.
type ChordOption = chords.Option

// WithBlockWrapper sets the markup Chordify expects around the first line
// of a song block. The default is <pre><code> and </code></pre>.
func WithBlockWrapper(open, close string) ChordOption {
	return chords.WithWrapper(open, close)
}

// Line kinds.
const (
	PlainLine     = chords.PlainLine
	ChordLine     = chords.ChordLine
	SectionMarker = chords.SectionMarker
)

// KeysOf returns the chord names known to d.
func KeysOf(d Dictionary) KeySet {
	return chords.KeysOf(d)
}

// Classify reports whether line is a section marker, a chord line, or
// plain text, given the known chord names.
func Classify(line string, keys KeySet) LineKind {
	return chords.Classify(line, keys)
}

// Locate splits line into tokens with their byte offsets and the number of
// whitespace characters before each.
func Locate(line string) []Token {
	return chords.Locate(line)
}

// Render wraps every token in a chord span, keeping the spacing recorded in
// the tokens. Names missing from dict get an empty fingering.
func Render(tokens []Token, dict Dictionary) string {
	return chords.Render(tokens, dict)
}

// Chordify annotates every chord line and section marker of doc.
// Lines are split on "\n" and the line count is preserved.
func Chordify(doc string, dict Dictionary, opts ...ChordOption) (string, error) {
	if dict == nil {
		return "", ErrNilDictionary
	}
	return chords.Transform(doc, dict, opts...), nil
}

// Inspect classifies every line of doc without producing markup.
func Inspect(doc string, dict Dictionary) ([]LineInfo, error) {
	if dict == nil {
		return nil, ErrNilDictionary
	}
	return chords.NewTransformer(dict).Annotate(doc), nil
}

// DefaultDictionary returns the built-in chord table. The table is parsed
// once; each call returns a fresh copy the caller may modify.
func DefaultDictionary() (MapDictionary, error) {
	d, err := chorddata.Default()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChordsLoad, err)
	}
	return d.Merge(nil), nil
}

// LoadDictionary reads a chord file (.yaml, .yml, .json or .toml) and
// overlays it on the built-in table, or uses it alone when replace is true.
func LoadDictionary(path string, replace bool) (MapDictionary, error) {
	r, err := chorddata.NewResolver(path, replace)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChordsLoad, err)
	}
	d, err := r.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrChordsLoad, err)
	}
	return d, nil
}
