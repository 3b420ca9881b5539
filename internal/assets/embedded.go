package assets

import (
	"embed"
	"io/fs"
)

//go:embed styles/*.css
var embeddedFS embed.FS

// EmbeddedLoader serves the styles compiled into the binary.
type EmbeddedLoader struct {
	fsys fs.FS
}

func NewEmbeddedLoader() *EmbeddedLoader {
	sub, err := fs.Sub(embeddedFS, "styles")
	if err != nil {
		// fs.Sub only fails on an invalid literal path.
		panic(err)
	}
	return &EmbeddedLoader{fsys: sub}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	return readStyle(e.fsys, name)
}

func (e *EmbeddedLoader) ListStyles() ([]string, error) {
	return listStyles(e.fsys)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
