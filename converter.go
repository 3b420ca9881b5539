package chordsheet

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-chordsheet/internal/assets"
	"github.com/alnah/go-chordsheet/internal/chorddata"
	"github.com/alnah/go-chordsheet/internal/chords"
	"github.com/alnah/go-chordsheet/internal/fileutil"
	"github.com/alnah/go-chordsheet/internal/pipeline"
)

// Converter orchestrates the song-sheet-to-PDF pipeline.
// Create with NewConverter, call Convert, and Close when done.
// A Converter is not safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	logger       *log.Logger
	assetLoader  assets.AssetLoader
	dict         Dictionary
	dictSet      bool
	preprocessor pipeline.MarkdownPreprocessor
	htmlConv     pipeline.HTMLConverter
	annotator    pipeline.ChordAnnotator
	styler       pipeline.StyleInjector
	pdfConverter pdfConverter
}

// NewConverter creates a Converter. The chord dictionary and stylesheet are
// resolved here so Convert never touches the filesystem for them.
// The browser is launched on the first PDF conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:    defaultTimeout,
			styleInput: assets.DefaultStyleName,
		},
		logger:       log.New(io.Discard),
		assetLoader:  assets.NewEmbeddedLoader(),
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		htmlConv:     pipeline.NewGoldmarkConverter(),
		styler:       pipeline.HeadStyleInjector{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
		c.logger.Debug("styles resolved", "dir", c.cfg.assetPath, "custom", resolver.HasCustomLoader())
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if err := c.resolveDictionary(); err != nil {
		return nil, err
	}

	var chordOpts []chords.Option
	if w := c.cfg.wrapper; w != nil {
		if w.Open == "" && w.Close != "" {
			return nil, fmt.Errorf("%w: close tag %q without open tag", ErrInvalidWrapper, w.Close)
		}
		chordOpts = append(chordOpts, chords.WithWrapper(w.Open, w.Close))
	}
	c.annotator = pipeline.NewChordAnnotation(c.dict, chordOpts...)

	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// Dictionary returns the chord dictionary in use.
func (c *Converter) Dictionary() Dictionary {
	return c.dict
}

// Convert runs the full pipeline and returns the HTML and, unless
// input.HTMLOnly is set, the PDF.
// Internal panics are recovered and returned as errors.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	start := time.Now()

	md := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = pipeline.ExtractTitle(md)
	}

	htmlContent, err := c.htmlConv.ToHTML(ctx, md, title)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	if input.SourceDir != "" {
		htmlContent, err = pipeline.RewriteRelativePaths(htmlContent, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	htmlContent, err = c.annotator.Annotate(ctx, htmlContent)
	if err != nil {
		return nil, fmt.Errorf("annotating chords: %w", err)
	}

	// Converter style first so user CSS can override it.
	css := c.cfg.resolvedStyle
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	htmlContent = c.styler.InjectStyle(ctx, htmlContent, css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &ConvertResult{HTML: []byte(htmlContent)}
	c.logger.Debug("html ready", "title", title, "bytes", len(res.HTML), "elapsed", time.Since(start))

	if input.HTMLOnly {
		return res, nil
	}

	pdf, err := c.pdfConverter.ToPDF(ctx, htmlContent, input.Page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	c.logger.Debug("pdf ready", "title", title, "bytes", len(pdf), "elapsed", time.Since(start))

	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns the style option (name, path, or CSS content) into CSS.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if c.cfg.noStyle || input == "" {
		return nil
	}

	switch fileutil.ClassifyStyle(input) {
	case fileutil.StylePath:
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	case fileutil.StyleInline:
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrStyleNotFound, input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// resolveDictionary picks the explicit dictionary, the configured chord
// file, or the built-in table, in that order.
func (c *Converter) resolveDictionary() error {
	if c.dictSet {
		if c.dict == nil {
			return ErrNilDictionary
		}
		return nil
	}

	if c.cfg.chordsFile == "" {
		d, err := chorddata.Default()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrChordsLoad, err)
		}
		c.dict = d.Merge(nil) // callers may mutate what Dictionary returns
		return nil
	}

	d, err := LoadDictionary(c.cfg.chordsFile, c.cfg.replaceChords)
	if err != nil {
		return err
	}
	c.logger.Debug("chords loaded", "file", c.cfg.chordsFile, "count", d.Len(), "replace", c.cfg.replaceChords)
	c.dict = d
	return nil
}

// validateInput checks required fields. Library callers build Input by hand,
// so this is the trust boundary.
func validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return input.Page.Validate()
}
