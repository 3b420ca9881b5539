package chords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a maximal run of non-whitespace characters within a line.
type Token struct {
	Text  string
	Start int // byte offset of the first character
	End   int // byte offset just past the last character

	// PrecedingSpaces counts the whitespace characters between the previous
	// token (or line start) and this one.
	PrecedingSpaces int
}

// Locate scans line left to right and returns its tokens in order.
func Locate(line string) []Token {
	var tokens []Token
	prevEnd := 0
	start := -1

	for i, r := range line {
		space := unicode.IsSpace(r)
		switch {
		case !space && start < 0:
			start = i
		case space && start >= 0:
			tokens = append(tokens, newToken(line, start, i, prevEnd))
			prevEnd = i
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, newToken(line, start, len(line), prevEnd))
	}
	return tokens
}

func newToken(line string, start, end, prevEnd int) Token {
	return Token{
		Text:            line[start:end],
		Start:           start,
		End:             end,
		PrecedingSpaces: utf8.RuneCountInString(line[prevEnd:start]),
	}
}

// Reconstruct rebuilds a line from tokens, emitting each gap as ASCII spaces.
// Trailing whitespace of the original line is not recovered.
func Reconstruct(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(strings.Repeat(" ", t.PrecedingSpaces))
		b.WriteString(t.Text)
	}
	return b.String()
}
