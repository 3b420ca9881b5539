package chordsheet

import (
	"time"

	"github.com/charmbracelet/log"
)

// Default converter timeout.
const defaultTimeout = 30 * time.Second

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	styleInput    string // name, file path, or CSS content
	noStyle       bool
	resolvedStyle string
	assetPath     string
	chordsFile    string
	replaceChords bool
	wrapper       *Wrapper
}

// WithTimeout sets the PDF rendering timeout. Panics if d is not positive.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("chordsheet: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet: a style name ("default", "dark",
// "compact"), a path to a .css file, or literal CSS content.
// An empty value disables the converter stylesheet.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
		c.cfg.noStyle = style == ""
	}
}

// WithAssetPath sets a directory whose styles/{name}.css files take
// precedence over the built-in styles.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithDictionary sets the chord dictionary. It takes precedence over
// WithChordsFile.
func WithDictionary(dict Dictionary) Option {
	return func(c *Converter) {
		c.dict = dict
		c.dictSet = true
	}
}

// WithChordsFile loads chords from a YAML, JSON or TOML file. Entries
// overlay the built-in table unless replace is true.
func WithChordsFile(path string, replace bool) Option {
	return func(c *Converter) {
		c.cfg.chordsFile = path
		c.cfg.replaceChords = replace
	}
}

// WithWrapper sets the markup expected around the first line of a song
// block. The default is <pre><code> and </code></pre>.
func WithWrapper(open, close string) Option {
	return func(c *Converter) {
		c.cfg.wrapper = &Wrapper{Open: open, Close: close}
	}
}

// WithLogger sets the logger used for conversion diagnostics.
// The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}
