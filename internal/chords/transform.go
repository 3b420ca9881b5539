package chords

import "strings"

// Default wrapper emitted by Markdown renderers around a code block.
// Only the first line of the block carries the open tag.
const (
	DefaultWrapperOpen  = "<pre><code>"
	DefaultWrapperClose = "</code></pre>"
)

// Wrapper is a pair of markup strings that upstream formatting puts
// around the first line of a block.
type Wrapper struct {
	Open  string
	Close string
}

// DefaultWrapper returns the <pre><code> wrapper.
func DefaultWrapper() Wrapper {
	return Wrapper{Open: DefaultWrapperOpen, Close: DefaultWrapperClose}
}

// strip removes the open tag from the start of line and, when that
// happened, the close tag from the end of what is left.
func (w Wrapper) strip(line string) (string, bool) {
	if w.Open == "" || !strings.HasPrefix(line, w.Open) {
		return line, false
	}
	line = strings.TrimPrefix(line, w.Open)
	if w.Close != "" {
		line = strings.TrimSuffix(line, w.Close)
	}
	return line, true
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithWrapper sets the open and close wrapper tags. An empty open tag
// disables wrapper handling.
func WithWrapper(open, close string) Option {
	return func(t *Transformer) {
		t.wrapper = Wrapper{Open: open, Close: close}
	}
}

// WithKeys overrides the set of names treated as chords. By default the
// dictionary keys are used.
func WithKeys(keys KeySet) Option {
	return func(t *Transformer) {
		t.keys = keys
	}
}

// Transformer applies the per-line rules to documents.
// It is immutable after construction and safe for concurrent use.
type Transformer struct {
	dict    Dictionary
	keys    KeySet
	wrapper Wrapper
}

// NewTransformer builds a Transformer over dict. A nil dict behaves as an
// empty dictionary.
func NewTransformer(dict Dictionary, opts ...Option) *Transformer {
	if dict == nil {
		dict = MapDictionary{}
	}
	t := &Transformer{
		dict:    dict,
		wrapper: DefaultWrapper(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.keys == nil {
		t.keys = KeysOf(dict)
	}
	return t
}

// Transform annotates every line of doc and joins them with "\n".
func (t *Transformer) Transform(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		lines[i] = t.TransformLine(line)
	}
	return strings.Join(lines, "\n")
}

// TransformLine annotates a single line.
//
// When the line started with the open wrapper, only the open wrapper is put
// back in front of the result; a stripped close wrapper is dropped.
// Downstream stylesheets rely on this output, so keep it.
func (t *Transformer) TransformLine(line string) string {
	line, wrapped := t.wrapper.strip(line)

	var out string
	switch Classify(line, t.keys) {
	case SectionMarker:
		out = RenderSection(line)
	case ChordLine:
		out = Render(Locate(line), t.dict)
	default:
		out = line
	}

	if wrapped {
		return t.wrapper.Open + out
	}
	return out
}

// LineInfo describes how a single line was classified.
type LineInfo struct {
	Number  int // 1-based
	Text    string
	Kind    LineKind
	Wrapped bool
	Tokens  []Token // set for chord lines only
}

// Annotate reports the classification of every line of doc without
// rendering markup.
func (t *Transformer) Annotate(doc string) []LineInfo {
	lines := strings.Split(doc, "\n")
	infos := make([]LineInfo, len(lines))
	for i, raw := range lines {
		line, wrapped := t.wrapper.strip(raw)
		info := LineInfo{
			Number:  i + 1,
			Text:    line,
			Kind:    Classify(line, t.keys),
			Wrapped: wrapped,
		}
		if info.Kind == ChordLine {
			info.Tokens = Locate(line)
		}
		infos[i] = info
	}
	return infos
}

// Keys returns the key set used for classification.
func (t *Transformer) Keys() KeySet {
	return t.keys
}

// Transform annotates doc with a one-off Transformer.
func Transform(doc string, dict Dictionary, opts ...Option) string {
	return NewTransformer(dict, opts...).Transform(doc)
}
