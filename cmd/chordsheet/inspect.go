package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	chordsheet "github.com/alnah/go-chordsheet"
)

// inspectPalette colors the inspect report. Styles render plain text when
// the writer is not a terminal.
type inspectPalette struct {
	number  lipgloss.Style
	section lipgloss.Style
	chord   lipgloss.Style
	plain   lipgloss.Style
	token   lipgloss.Style
}

func newInspectPalette(w io.Writer) *inspectPalette {
	r := lipgloss.NewRenderer(w)
	style := func(fg string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(fg))
	}
	return &inspectPalette{
		number:  style("#626262"),
		section: style("#7D56F4").Bold(true),
		chord:   style("#04B575").Bold(true),
		plain:   style("#626262"),
		token:   style("#FFA500").Italic(true),
	}
}

func (p *inspectPalette) kind(k chordsheet.LineKind) lipgloss.Style {
	switch k {
	case chordsheet.SectionMarker:
		return p.section
	case chordsheet.ChordLine:
		return p.chord
	default:
		return p.plain
	}
}

// runInspect prints the classification of every line of a file, with token
// offsets for chord lines.
func runInspect(args []string, env *Environment) error {
	flags, positional, err := parseDictFlags("inspect", args, env.Stderr, printInspectUsage)
	if err != nil {
		return err
	}

	_, dict, err := loadDictFlags(flags)
	if err != nil {
		return err
	}

	doc, err := readInput(positional, env.Stdin)
	if err != nil {
		return err
	}

	infos, err := chordsheet.Inspect(doc, dict)
	if err != nil {
		return err
	}

	printInspection(env.Stdout, infos, flags.common.quiet)
	return nil
}

// printInspection writes one row per line:
//
//	3 chord   C     G
//	  C[0:1]+0 G[6:7]+5
func printInspection(w io.Writer, infos []chordsheet.LineInfo, quiet bool) {
	p := newInspectPalette(w)
	counts := make(map[chordsheet.LineKind]int, 3)

	for _, info := range infos {
		counts[info.Kind]++
		if quiet && info.Kind == chordsheet.PlainLine {
			continue
		}

		label := info.Kind.String()
		if info.Wrapped {
			label += "*"
		}
		fmt.Fprintf(w, "%s %s %s\n",
			p.number.Render(fmt.Sprintf("%4d", info.Number)),
			p.kind(info.Kind).Render(fmt.Sprintf("%-8s", label)),
			info.Text)

		if len(info.Tokens) > 0 {
			fmt.Fprintf(w, "     %s\n", p.token.Render(formatTokens(info.Tokens)))
		}
	}

	if !quiet {
		fmt.Fprintf(w, "\n%d lines: %d chord, %d section, %d plain\n",
			len(infos), counts[chordsheet.ChordLine], counts[chordsheet.SectionMarker], counts[chordsheet.PlainLine])
	}
}

// formatTokens renders tokens as NAME[start:end]+gap.
func formatTokens(tokens []chordsheet.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = fmt.Sprintf("%s[%d:%d]+%d", t.Text, t.Start, t.End, t.PrecedingSpaces)
	}
	return strings.Join(parts, " ")
}
