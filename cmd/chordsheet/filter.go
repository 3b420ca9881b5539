package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	chordsheet "github.com/alnah/go-chordsheet"
)

// ErrReadInput is returned when the filter or inspect input cannot be read.
var ErrReadInput = errors.New("failed to read input")

// runFilter annotates stdin, or the file given as argument, and writes the
// result to stdout. The input is taken as already rendered HTML or plain
// text; no Markdown conversion happens.
func runFilter(args []string, env *Environment) error {
	flags, positional, err := parseDictFlags("filter", args, env.Stderr, printFilterUsage)
	if err != nil {
		return err
	}

	cfg, dict, err := loadDictFlags(flags)
	if err != nil {
		return err
	}

	doc, err := readInput(positional, env.Stdin)
	if err != nil {
		return err
	}

	var opts []chordsheet.ChordOption
	if cfg.Wrapper.Open != "" {
		opts = append(opts, chordsheet.WithBlockWrapper(cfg.Wrapper.Open, cfg.Wrapper.Close))
	}

	out, err := chordsheet.Chordify(doc, dict, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(env.Stdout, out)
	return err
}

// readInput reads the file named by args[0], or stdin when args is empty
// or "-".
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return string(data), nil
}
