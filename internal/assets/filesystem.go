package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemLoader serves {basePath}/styles/*.css. Symlinks that leave
// basePath are refused.
type FilesystemLoader struct {
	basePath string // absolute, symlinks resolved
	fsys     fs.FS
}

// NewFilesystemLoader returns ErrInvalidBasePath unless basePath is an
// existing directory. The styles subdirectory may be missing.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	abs, err := realPath(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}

	return &FilesystemLoader{
		basePath: abs,
		fsys:     os.DirFS(filepath.Join(abs, "styles")),
	}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	if err := f.contained(filepath.Join(f.basePath, "styles", name+styleExt)); err != nil {
		return "", err
	}
	return readStyle(f.fsys, name)
}

func (f *FilesystemLoader) ListStyles() ([]string, error) {
	return listStyles(f.fsys)
}

// contained returns ErrPathTraversal when p, once symlinks are followed,
// lies outside basePath. A missing p passes; reading it fails later.
func (f *FilesystemLoader) contained(p string) error {
	resolved, err := realPath(p)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}
	if !strings.HasPrefix(resolved, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}
	return nil
}

// realPath makes p absolute and resolves symlinks in its longest existing
// prefix, so missing files compare against the same real base directory.
func realPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	var missing []string
	for dir := abs; ; dir = filepath.Dir(dir) {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(append([]string{resolved}, missing...)...), nil
		}
		if filepath.Dir(dir) == dir {
			return abs, nil
		}
		missing = append([]string{filepath.Base(dir)}, missing...)
	}
}

var _ AssetLoader = (*FilesystemLoader)(nil)
