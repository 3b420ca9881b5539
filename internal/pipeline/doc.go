// Package pipeline turns a Markdown song sheet into a styled, chord-annotated
// HTML document.
//
// Stages, in the order the converter runs them:
//   - Markdown preprocessing (line ending normalization, blank line compression)
//   - Markdown to HTML conversion via Goldmark
//   - Relative image and link rewriting to file:// URLs
//   - Chord annotation of preformatted song blocks
//   - CSS injection
//
// Song blocks are fenced or indented code blocks, which Goldmark renders as
// <pre><code>. The chord annotation stage relies on that wrapper.
//
// PDF generation is handled by the root chordsheet package using headless
// Chrome (go-rod).
package pipeline
