package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert Markdown song sheets to PDF or HTML")
	fmt.Fprintln(w, "  filter     Annotate chord lines from stdin to stdout")
	fmt.Fprintln(w, "  inspect    Show how each line of a file is classified")
	fmt.Fprintln(w, "  chords     List or look up known chords")
	fmt.Fprintln(w, "  doctor     Check the PDF rendering environment")
	fmt.Fprintln(w, "  completion Generate a shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'chordsheet help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown song sheets to PDF. Chord lines inside code blocks")
	fmt.Fprintln(w, "without a language are annotated with their finger positioning.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w)
	printChordFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, a5, legal")
	fmt.Fprintln(w, "      --orientation <s>     Orientation: portrait, landscape")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name (default, compact, dark) or CSS file")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory containing styles/{name}.css")
	fmt.Fprintln(w, "      --no-style            Disable the chord stylesheet")
	fmt.Fprintln(w)
	printOutputControl(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment (flags win, then environment, then config file):")
	fmt.Fprintln(w, "  CHORDSHEET_CONFIG         Config file name or path")
	fmt.Fprintln(w, "  CHORDSHEET_STYLE          Style name or CSS file")
	fmt.Fprintln(w, "  CHORDSHEET_CHORDS         Chord file")
	fmt.Fprintln(w, "  CHORDSHEET_TIMEOUT        PDF generation timeout")
	fmt.Fprintln(w, "  CHORDSHEET_INPUT_DIR      Default input directory")
	fmt.Fprintln(w, "  CHORDSHEET_OUTPUT_DIR     Default output directory")
	fmt.Fprintln(w, "  CHORDSHEET_PAGE_SIZE      Page size")
	fmt.Fprintln(w, "  CHORDSHEET_WORKERS        Parallel workers")
}

// printFilterUsage prints usage for the filter command.
func printFilterUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet filter [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Annotate chord lines and section markers. Reads stdin when no file")
	fmt.Fprintln(w, "is given. The input is used as is: HTML or plain text, not Markdown.")
	fmt.Fprintln(w)
	printChordFlags(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet inspect [flags] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the kind of every line (plain, chord, section) and the token")
	fmt.Fprintln(w, "offsets of chord lines. A * marks lines that opened a song block.")
	fmt.Fprintln(w)
	printChordFlags(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Hide plain lines and the summary")
}

// printChordsUsage prints usage for the chords command.
func printChordsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet chords [flags] [name...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List every known chord, or look up the given names.")
	fmt.Fprintln(w)
	printChordFlags(w)
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --yaml                Print as a chord file")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: chordsheet doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, sandbox settings and the built-in chord table.")
}

func printChordFlags(w io.Writer) {
	fmt.Fprintln(w, "Chords:")
	fmt.Fprintln(w, "      --chords <path>       Chord file (.yaml, .yml, .json, .toml)")
	fmt.Fprintln(w, "      --replace-chords      Use the chord file without the built-in table")
}

func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "filter":
		printFilterUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "chords":
		printChordsUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: chordsheet version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: chordsheet help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
