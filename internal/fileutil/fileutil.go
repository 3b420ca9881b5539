// Package fileutil holds the small file and path helpers shared by the
// converter, the config loader and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// tempPrefix names temp files so stray ones are easy to spot.
const tempPrefix = "chordsheet-"

// WriteTempFile writes content to a new file named chordsheet-*.<extension>
// in the system temp directory. The caller must run cleanup once the file
// is no longer needed; cleanup is nil when err is not.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPrefix+"*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path = f.Name()

	_, werr := f.WriteString(content)
	if err := errors.Join(werr, f.Close()); err != nil {
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}

	return path, func() { _ = os.Remove(path) }, nil
}

// ValidateExtension rejects extensions that could move a temp file out of
// the temp directory.
func ValidateExtension(extension string) error {
	switch {
	case extension == "":
		return ErrExtensionEmpty
	case strings.ContainsAny(extension, "/\\\x00"):
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath reports whether s contains a path separator, which is how a
// style or config path is told apart from a bare name ("songbook").
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// StyleSource tells how a --style value should be resolved.
type StyleSource int

const (
	StyleName   StyleSource = iota // embedded or asset-path style name
	StylePath                      // CSS file on disk
	StyleInline                    // raw CSS
)

// ClassifyStyle decides whether s is inline CSS (it has a "{"), a file
// path, or a style name, checked in that order.
func ClassifyStyle(s string) StyleSource {
	switch {
	case strings.Contains(s, "{"):
		return StyleInline
	case IsFilePath(s):
		return StylePath
	}
	return StyleName
}

// IsMarkdown reports whether path ends in .md or .markdown, in any case.
func IsMarkdown(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".md") || strings.EqualFold(ext, ".markdown")
}
