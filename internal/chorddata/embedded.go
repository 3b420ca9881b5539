package chorddata

import (
	_ "embed"
	"fmt"

	"github.com/alnah/go-chordsheet/internal/chords"
)

//go:embed data/chords.yaml
var embeddedChords []byte

// EmbeddedLoader loads the built-in chord table.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// Load decodes the built-in table. Each call returns a fresh map.
func (e *EmbeddedLoader) Load() (chords.MapDictionary, error) {
	d, err := decode(embeddedChords, FormatYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded chords: %w", err)
	}
	return d, nil
}

// defaultCache holds the built-in table once decoded.
var defaultCache = NewCache(NewEmbeddedLoader())

// Default returns the built-in chord table, decoded once per process.
// Callers must not modify the returned map.
func Default() (chords.MapDictionary, error) {
	return defaultCache.Load()
}

// Compile-time interface check.
var _ Loader = (*EmbeddedLoader)(nil)
