package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alnah/go-chordsheet/internal/hints"
	"github.com/alnah/go-chordsheet/internal/yamlutil"
)

// ErrUnknownChord is returned when a looked-up name is not in the dictionary.
var ErrUnknownChord = errors.New("unknown chord")

// chordExport mirrors the chord file layout so --yaml output can be loaded
// back with --chords.
type chordExport struct {
	Chords map[string]string `yaml:"chords"`
}

// runChords lists the dictionary, or looks up the names given as arguments.
func runChords(args []string, env *Environment) error {
	flags, names, err := parseDictFlags("chords", args, env.Stderr, printChordsUsage)
	if err != nil {
		return err
	}

	_, dict, err := loadDictFlags(flags)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		names = dict.Keys()
	}

	found := make(map[string]string, len(names))
	var missing []string
	for _, name := range names {
		if fingering, ok := dict.Get(name); ok {
			found[name] = fingering
		} else {
			missing = append(missing, name)
		}
	}

	switch {
	case flags.yaml && len(found) == 0:
		// An empty chords map would load back as a no-op chord file.
	case flags.yaml:
		data, err := yamlutil.Marshal(chordExport{Chords: found})
		if err != nil {
			return err
		}
		if _, err := env.Stdout.Write(data); err != nil {
			return err
		}
	default:
		printChordTable(env.Stdout, names, found)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v%s", ErrUnknownChord, missing, hints.ForUnknownChord(missing[0], dict.Keys()))
	}
	return nil
}

// printChordTable writes NAME FINGERING rows in the order of names,
// skipping names missing from found.
func printChordTable(w io.Writer, names []string, found map[string]string) {
	width := 0
	for _, name := range names {
		if _, ok := found[name]; ok {
			width = max(width, len(name))
		}
	}
	for _, name := range names {
		fingering, ok := found[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-*s  %s\n", width, name, fingering)
	}
}
