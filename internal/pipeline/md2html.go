package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultTitle is used when a song sheet has no title.
const DefaultTitle = "Chord Sheet"

// HTMLConverter turns Markdown into a complete HTML document.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content, title string) (string, error)
}

// GoldmarkConverter renders GFM with footnotes. Fenced blocks naming a
// language get chroma class-based highlighting; other code blocks stay
// plain so chord annotation can find them.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

func NewGoldmarkConverter() *GoldmarkConverter {
	return &GoldmarkConverter{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
				highlighting.WithWrapperRenderer(wrapCodeBlock),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)}
}

// wrapCodeBlock ends every fenced block with a newline so the next block's
// opening tag starts its own line. Chroma writes its own pre/code pair for
// highlighted blocks; plain ones get the same markup goldmark would emit.
func wrapCodeBlock(w util.BufWriter, c highlighting.CodeBlockContext, entering bool) {
	if c.Highlighted() {
		if !entering {
			_ = w.WriteByte('\n')
		}
		return
	}
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return
	}
	_, _ = w.WriteString("<pre><code")
	if lang, ok := c.Language(); ok {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.WriteString(html.EscapeString(string(lang)))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}

// ToHTML renders content inside an HTML5 page titled title, or
// DefaultTitle when empty. goldmark cannot be interrupted, so a cancelled
// ctx returns early and leaves the render to finish in the background.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultTitle
	}

	body := make(chan []byte, 1)
	failed := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			failed <- fmt.Errorf("%w: %v", ErrHTMLConversion, err)
			return
		}
		body <- buf.Bytes()
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case err := <-failed:
		return "", err
	case b := <-body:
		return wrapDocument(title, b), nil
	}
}

// wrapDocument places body in a minimal UTF-8 HTML5 page.
func wrapDocument(title string, body []byte) string {
	var sb strings.Builder
	sb.Grow(len(body) + 128)
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n</head>\n<body>\n")
	sb.Write(body)
	sb.WriteString("\n</body>\n</html>")
	return sb.String()
}

var _ HTMLConverter = (*GoldmarkConverter)(nil)
