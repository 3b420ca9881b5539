package assets

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid style name")
	ErrInvalidBasePath  = errors.New("invalid asset directory")
	ErrAssetRead        = errors.New("failed to read style")
	ErrPathTraversal    = errors.New("style path escapes asset directory")
)

// MaxStyleNameLength bounds style names accepted by the loaders.
const MaxStyleNameLength = 64

// Style names map to styles/{name}.css, so they are restricted to a plain
// file stem: letters, digits, '-' and '_', not starting with a separator.
var styleNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName reports ErrInvalidAssetName for names that cannot be
// used as a style file stem.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxStyleNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, MaxStyleNameLength)
	case !styleNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
