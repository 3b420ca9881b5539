// Package chordsheet annotates lyric and chord sheets and renders them to
// HTML or PDF.
//
// A song sheet is Markdown whose songs live in fenced or indented code
// blocks. Inside those blocks, lines made only of known chord names become
// chord lines, lines like "[Chorus]" become section markers, and everything
// else is left as lyrics:
//
//	[Verse]
//	Am        C         G
//	Walking down the empty road
//
// Each chord is wrapped as
//
//	<span class="chord" data-finger-positioning="x02210">Am</span>
//
// with the original horizontal spacing kept, and section markers as
// <span class="block">[Verse]</span>.
//
// # Core operations
//
// Classify, Locate, Render and Chordify work on plain strings and never fail.
// They need a Dictionary mapping chord names to fingerings; DefaultDictionary
// returns the built-in table and LoadDictionary reads a YAML, JSON or TOML
// file.
//
// # Conversion
//
// Converter runs the full pipeline (Markdown, HTML, chord annotation, CSS,
// and PDF through headless Chrome):
//
//	conv, err := chordsheet.NewConverter(chordsheet.WithStyle("dark"))
//	if err != nil {
//		return err
//	}
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, chordsheet.Input{Markdown: song})
//
// Set Input.HTMLOnly to skip the browser. A Converter is not safe for
// concurrent use; use ConverterPool for parallel batches.
package chordsheet
