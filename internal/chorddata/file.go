package chorddata

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-chordsheet/internal/chords"
	"github.com/alnah/go-chordsheet/internal/yamlutil"
)

// MaxFileSize limits chord files to 1MB.
const MaxFileSize = 1 << 20

// Format identifies a chord file encoding.
type Format string

// Supported formats. JSON is decoded by the YAML parser.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q (use .yaml, .yml, .json or .toml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// FileLoader loads a chord dictionary from a file on disk.
type FileLoader struct {
	path   string
	format Format
}

// NewFileLoader creates a FileLoader for path.
// Returns ErrUnsupportedFormat if the extension is not recognized.
func NewFileLoader(path string) (*FileLoader, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return &FileLoader{path: path, format: format}, nil
}

// Path returns the file path.
func (f *FileLoader) Path() string {
	return f.path
}

// Load reads, decodes and validates the chord file.
func (f *FileLoader) Load() (chords.MapDictionary, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrChordFileNotFound, f.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrChordFileRead, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrChordFileRead, f.path)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrChordFileTooLarge, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(f.path) // #nosec G304 -- user-provided chord file
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChordFileRead, err)
	}

	d, err := decode(data, f.format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return d, nil
}

// decode parses data in the given format and validates the entries.
func decode(data []byte, format Format) (chords.MapDictionary, error) {
	var cf chordFile

	switch format {
	case FormatYAML, FormatJSON:
		if err := yamlutil.UnmarshalStrict(data, &cf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChordFileParse, err)
		}
	case FormatTOML:
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChordFileParse, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown field %q", ErrChordFileParse, undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	d := chords.MapDictionary(cf.Chords)
	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Compile-time interface check.
var _ Loader = (*FileLoader)(nil)
