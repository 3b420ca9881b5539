package chorddata

import "github.com/alnah/go-chordsheet/internal/chords"

// Loader loads a chord dictionary from some source.
// Implementations may read embedded data, files, a database, etc.
type Loader interface {
	Load() (chords.MapDictionary, error)
}

// chordFile is the on-disk shape shared by every supported format.
type chordFile struct {
	Chords map[string]string `yaml:"chords" toml:"chords"`
}
