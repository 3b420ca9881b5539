package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"
)

// StyleInjector adds a stylesheet to an HTML document.
type StyleInjector interface {
	InjectStyle(ctx context.Context, htmlContent, css string) string
}

// HeadStyleInjector places a <style> element at the end of <head>, at the
// start of <body> when there is no head, or before everything else.
type HeadStyleInjector struct{}

// InjectStyle returns htmlContent with css inlined. Empty css or a
// cancelled ctx leaves the document untouched.
func (HeadStyleInjector) InjectStyle(ctx context.Context, htmlContent, css string) string {
	if css == "" || ctx.Err() != nil {
		return htmlContent
	}

	style := "<style>" + escapeStyleText(css) + "</style>"
	at := styleOffset(htmlContent)
	return htmlContent[:at] + style + htmlContent[at:]
}

// styleOffset scans the document once and returns the byte offset of the
// first </head>, else the end of the first <body> start tag, else 0.
func styleOffset(doc string) int {
	z := html.NewTokenizer(strings.NewReader(doc))
	offset, afterBody := 0, -1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		n := len(z.Raw())
		switch tt {
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "head" {
				return offset
			}
		case html.StartTagToken:
			if name, _ := z.TagName(); afterBody < 0 && string(name) == "body" {
				afterBody = offset + n
			}
		}
		offset += n
	}
	return max(afterBody, 0)
}

// escapeStyleText keeps the stylesheet from closing its own element.
func escapeStyleText(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

var _ StyleInjector = HeadStyleInjector{}
