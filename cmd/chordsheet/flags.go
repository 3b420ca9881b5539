package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks command line parsing failures.
var ErrUsage = errors.New("invalid usage")

// usageError wraps a parse error, leaving flag.ErrHelp recognizable.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// chordFlags selects the chord dictionary.
type chordFlags struct {
	file    string
	replace bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds styling flags.
type assetFlags struct {
	style     string // name, CSS file path, or empty for the default
	assetPath string
	noStyle   bool
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // HTML alongside the PDF
	htmlOnly bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	chords     chordFlags
	page       pageFlags
	assets     assetFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addChordFlags adds dictionary flags to a FlagSet.
func addChordFlags(fs *flag.FlagSet, f *chordFlags) {
	fs.StringVar(&f.file, "chords", "", "chord file (.yaml, .yml, .json, .toml)")
	fs.BoolVar(&f.replace, "replace-chords", false, "use the chord file alone, without the built-in table")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, a5, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addAssetFlags adds styling flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "style name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory containing styles/{name}.css")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable the chord stylesheet")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// newConvertFlagSet registers every convert flag. Parsing and shell
// completion share it.
func newConvertFlagSet() (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addChordFlags(fs, &f.chords)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)
	addOutputFlags(fs, &f.outputMode)
	return fs, f
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs, f := newConvertFlagSet()
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// dictFlags holds flags for the filter, inspect and chords commands.
type dictFlags struct {
	common commonFlags
	chords chordFlags
	yaml   bool // chords only
}

// newDictFlagSet registers the flags of a dictionary-only command.
func newDictFlagSet(name string) (*flag.FlagSet, *dictFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &dictFlags{}

	addCommonFlags(fs, &f.common)
	addChordFlags(fs, &f.chords)
	if name == "chords" {
		fs.BoolVar(&f.yaml, "yaml", false, "print the dictionary as a chord file")
	}
	return fs, f
}

// parseDictFlags parses flags for commands that only need a dictionary.
func parseDictFlags(name string, args []string, stderr io.Writer, usage func(io.Writer)) (*dictFlags, []string, error) {
	fs, f := newDictFlagSet(name)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	return f, fs.Args(), nil
}

// newDoctorFlagSet registers the doctor flags.
func newDoctorFlagSet() (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "print the report as JSON")
	return fs, jsonOutput
}
