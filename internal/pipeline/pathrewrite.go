package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteTargets maps elements to the attribute holding a local reference.
// Media, srcset, script and CSS url() references are left alone.
var rewriteTargets = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

// skippedPrefixes mark references that are already resolvable.
var skippedPrefixes = []string{"http://", "https://", "file://", "data:", "mailto:", "//", "#"}

// RewriteRelativePaths converts relative img[src] and a[href] references to
// absolute file:// URLs rooted at sourceDir, so a song sheet rendered from a
// temp file still finds its chord diagrams and linked files.
// If sourceDir is empty, returns the HTML unchanged. References that resolve
// outside sourceDir are left untouched.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	root, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	walk(root, func(n *html.Node) {
		if attr, ok := rewriteTargets[n.DataAtom]; ok {
			rewriteAttr(n, attr, absSourceDir)
		}
	})

	return renderHTML(root, isFragment)
}

// parseHTML parses a full document or, failing a doctype/html prefix, a body
// fragment wrapped in a synthetic document node.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), body)
	if err != nil {
		return nil, true, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders a parsed tree; fragments render their children only.
func renderHTML(root *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// walk calls fn for every element node in depth-first order.
func walk(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func rewriteAttr(n *html.Node, key, sourceDir string) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isRelativePath(attr.Val) {
			continue
		}
		absPath := filepath.Join(sourceDir, attr.Val)
		if !isPathUnderDir(absPath, sourceDir) {
			continue
		}
		n.Attr[i].Val = pathToFileURL(absPath)
	}
}

// isRelativePath reports whether ref is a local relative path.
func isRelativePath(ref string) bool {
	if ref == "" || filepath.IsAbs(ref) {
		return false
	}
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(ref, p) {
			return false
		}
	}
	return true
}

// isPathUnderDir reports whether absPath equals dir or lies beneath it.
func isPathUnderDir(absPath, dir string) bool {
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(filepath.Clean(absPath)+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
