package chords

import (
	"html"
	"strings"
)

// Markup class names. Stylesheets depend on these exact values.
const (
	ChordClass = "chord"
	BlockClass = "block"

	// FingeringAttr carries the fingering descriptor of a chord span.
	FingeringAttr = "data-finger-positioning"
)

// Render emits each token as a chord span, preceded by as many spaces as
// the token had whitespace before it. A token missing from dict gets an
// empty fingering.
func Render(tokens []Token, dict Dictionary) string {
	var b strings.Builder
	for _, t := range tokens {
		var fingering string
		if dict != nil {
			fingering, _ = dict.Get(t.Text)
		}
		b.WriteString(strings.Repeat(" ", t.PrecedingSpaces))
		writeChordSpan(&b, t.Text, fingering)
	}
	return b.String()
}

func writeChordSpan(b *strings.Builder, name, fingering string) {
	b.WriteString(`<span class="` + ChordClass + `" ` + FingeringAttr + `="`)
	b.WriteString(html.EscapeString(fingering))
	b.WriteString(`">`)
	b.WriteString(name)
	b.WriteString(`</span>`)
}

// RenderSection wraps a section marker line in a block span.
// The line text is kept as is.
func RenderSection(line string) string {
	return `<span class="` + BlockClass + `">` + line + `</span>`
}
