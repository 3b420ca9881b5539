package assets

import (
	"errors"
	"maps"
	"slices"
)

// AssetResolver looks styles up in a custom directory first, then in the
// embedded set.
type AssetResolver struct {
	layers []AssetLoader // highest priority first
}

// NewAssetResolver builds a resolver over customBasePath and the embedded
// styles. An empty customBasePath means embedded styles only.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		custom, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, custom)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

// LoadStyle returns the style from the first layer that has it. Errors other
// than ErrStyleNotFound stop the lookup.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	var err error
	for _, l := range r.layers {
		var css string
		css, err = l.LoadStyle(name)
		if !errors.Is(err, ErrStyleNotFound) {
			return css, err
		}
	}
	return "", err
}

// ListStyles returns the sorted union of every layer's names.
func (r *AssetResolver) ListStyles() ([]string, error) {
	seen := make(map[string]struct{})
	for _, l := range r.layers {
		names, err := l.ListStyles()
		if err != nil {
			return nil, err
		}
		for _, n := range names {
			seen[n] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

// HasCustomLoader reports whether a custom directory is layered over the
// embedded styles.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
