package pipeline

import (
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownPreprocessor rewrites song sheet source before HTML conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor normalizes line endings to LF, drops a leading
// byte order mark and collapses runs of blank lines outside fenced blocks
// to one. Fenced blocks are copied verbatim.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown returns content unchanged when ctx is done.
func (CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	lines := strings.Split(normalizeLineEndings(strings.TrimPrefix(content, "\uFEFF")), "\n")
	out := lines[:0]
	var fence string
	blanks := 0
	for _, line := range lines {
		fence = nextFence(fence, line)
		if fence == "" && strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeLineEndings(s string) string {
	return lineEndings.Replace(s)
}

// nextFence returns the fence marker open after line, given the one open
// before it ("" for none). Only ``` and ~~~ fences are tracked; a fence is
// closed by a line starting with the same marker.
func nextFence(open, line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return open
	}
	for _, marker := range []string{"```", "~~~"} {
		if !strings.HasPrefix(trimmed, marker) {
			continue
		}
		switch open {
		case "":
			return marker
		case marker:
			return ""
		}
	}
	return open
}

var titleParser = goldmark.DefaultParser()

// ExtractTitle returns the plain text of the first level-one heading, ATX
// or setext, or "" when the sheet has none.
func ExtractTitle(markdown string) string {
	src := []byte(normalizeLineEndings(markdown))
	doc := titleParser.Parse(text.NewReader(src))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !entering || !ok || h.Level != 1 {
			return ast.WalkContinue, nil
		}
		title = plainText(h, src)
		return ast.WalkStop, nil
	})
	return strings.TrimSpace(title)
}

// plainText concatenates the text under n, dropping inline markup.
func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
