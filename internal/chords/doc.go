// Package chords annotates plain-text chord sheets.
//
// A sheet is processed line by line. Each line is classified as a section
// marker ("[Chorus]"), a chord line ("Am   G  C") or a plain line (lyrics and
// anything else):
//
//	Classify(line, keys)  -> SectionMarker | ChordLine | PlainLine
//	Locate(line)          -> []Token with offsets and preceding whitespace
//	Render(tokens, dict)  -> <span class="chord" ...> markup, spacing preserved
//	Transform(doc, dict)  -> whole document, one output line per input line
//
// Chord names are recognized only by membership in a Dictionary; no music
// theory is applied. All functions are pure and safe for concurrent use.
//
// Transform is not idempotent: feeding its output back in is undefined.
package chords
