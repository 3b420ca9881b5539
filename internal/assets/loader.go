package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// AssetLoader loads CSS styles by name, without the .css extension.
type AssetLoader interface {
	// LoadStyle returns ErrInvalidAssetName for malformed names and
	// ErrStyleNotFound when no such style exists.
	LoadStyle(name string) (string, error)

	// ListStyles returns the available style names, sorted.
	ListStyles() ([]string, error)
}

const styleExt = ".css"

// readStyle reads name.css from the root of fsys. name must already be valid.
func readStyle(fsys fs.FS, name string) (string, error) {
	data, err := fs.ReadFile(fsys, name+styleExt)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}

// listStyles returns the sorted base names of the .css files at the root of
// fsys. A missing root yields no names.
func listStyles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == styleExt {
			names = append(names, strings.TrimSuffix(e.Name(), styleExt))
		}
	}
	slices.Sort(names)
	return names, nil
}
