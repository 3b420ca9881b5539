package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	chordsheet "github.com/alnah/go-chordsheet"
	"github.com/alnah/go-chordsheet/internal/fileutil"
)

var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// songJob is one song sheet and the PDF it renders to.
type songJob struct {
	Source string
	Output string
}

// discoverSongs lists the song sheets under input. A single file must be
// Markdown; a directory is walked in lexical order, skipping dot
// directories such as .git, and its layout is mirrored under outDir.
func discoverSongs(input, outDir string) ([]songJob, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsMarkdown(input) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
		}
		return []songJob{{Source: input, Output: pdfPathFor(input, outDir, "")}}, nil
	}

	var jobs []songJob
	walk := func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return fmt.Errorf("scanning %s: %w", path, err)
		case d.IsDir() && path != input && strings.HasPrefix(d.Name(), "."):
			return filepath.SkipDir
		case d.IsDir(), !fileutil.IsMarkdown(path):
			return nil
		}
		jobs = append(jobs, songJob{Source: path, Output: pdfPathFor(path, outDir, input)})
		return nil
	}
	if err := filepath.WalkDir(input, walk); err != nil {
		return nil, err
	}
	return jobs, nil
}

// pdfPathFor picks where source renders:
//   - no outDir: next to source
//   - outDir ending in .pdf: that exact file
//   - root set: outDir plus source's path relative to root
//   - otherwise: directly in outDir
func pdfPathFor(source, outDir, root string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".pdf"

	switch {
	case outDir == "":
		return filepath.Join(filepath.Dir(source), name)
	case strings.HasSuffix(outDir, ".pdf"):
		return outDir
	case root != "":
		if rel, err := filepath.Rel(root, filepath.Dir(source)); err == nil {
			return filepath.Join(outDir, rel, name)
		}
	}
	return filepath.Join(outDir, name)
}

// htmlSibling swaps the .pdf extension for .html.
func htmlSibling(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}

// validateWorkers accepts 0 (auto) through chordsheet.MaxPoolSize.
func validateWorkers(n int) error {
	if n < 0 || n > chordsheet.MaxPoolSize {
		return fmt.Errorf("%w: %d (want 0 for auto, or 1 to %d)", ErrInvalidWorkerCount, n, chordsheet.MaxPoolSize)
	}
	return nil
}
