// Package chorddata provides chord dictionaries for the chords package.
//
// # Loader Architecture
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader  - built-in table compiled into the binary
//	    ├── FileLoader      - user chord file (YAML, JSON or TOML)
//	    └── Resolver        - user file overlaid on the built-in table
//
// Cache memoizes the first successful load of any Loader.
//
// # File Format
//
// All formats share one shape, a top-level "chords" table mapping chord
// names to fingering descriptors:
//
//	chords:
//	  Am: x02210
//	  G: "320003"
//
// In TOML, names that are not bare keys must be quoted:
//
//	[chords]
//	Am = "x02210"
//	"D/F#" = "200232"
package chorddata
