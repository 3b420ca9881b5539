package chorddata

import (
	"fmt"

	"github.com/alnah/go-chordsheet/internal/chords"
)

// Resolver combines a custom chord source with the built-in table.
// Custom entries win; with Replace set the built-in table is not used.
type Resolver struct {
	custom   *FileLoader // nil when no custom file is configured
	embedded Loader
	replace  bool
}

// NewResolver creates a Resolver. An empty path uses only the built-in table.
// Returns ErrUnsupportedFormat if path has an unknown extension.
func NewResolver(path string, replace bool) (*Resolver, error) {
	r := &Resolver{
		embedded: NewEmbeddedLoader(),
		replace:  replace,
	}
	if path != "" {
		fl, err := NewFileLoader(path)
		if err != nil {
			return nil, err
		}
		r.custom = fl
	}
	return r, nil
}

// Load returns the resolved dictionary.
func (r *Resolver) Load() (chords.MapDictionary, error) {
	if !r.HasCustomLoader() {
		return r.embedded.Load()
	}

	custom, err := r.custom.Load()
	if err != nil {
		return nil, fmt.Errorf("loading custom chords from %s: %w", r.custom.Path(), err)
	}
	if r.replace {
		return custom, nil
	}

	base, err := r.embedded.Load()
	if err != nil {
		return nil, err
	}
	return base.Merge(custom), nil
}

// HasCustomLoader returns true if a custom chord file is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
