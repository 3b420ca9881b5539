package chordsheet

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-chordsheet/internal/assets"
)

// fakePDF records calls and returns canned output.
type fakePDF struct {
	pdf    []byte
	err    error
	panics bool
	html   string
	page   *PageSettings
	calls  int
	closed bool
}

func (f *fakePDF) ToPDF(_ context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	f.calls++
	if f.panics {
		panic("renderer exploded")
	}
	f.html = htmlContent
	f.page = page
	return f.pdf, f.err
}

func (f *fakePDF) Close() error {
	f.closed = true
	return nil
}

func withPDF(p pdfConverter) Option {
	return func(c *Converter) {
		c.pdfConverter = p
	}
}

const testSong = "# Wonderwall\n\n```\n[Verse]\nAm      C\nToday is gonna be the day\n```\n"

func TestConverter_HTMLOnly(t *testing.T) {
	t.Parallel()

	fake := &fakePDF{}
	conv, err := NewConverter(WithDictionary(songDict), withPDF(fake))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	defer conv.Close()

	res, err := conv.Convert(context.Background(), Input{Markdown: testSong, HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	html := string(res.HTML)
	for _, want := range []string{
		"<title>Wonderwall</title>",
		`<span class="block">[Verse]</span>`,
		`<span class="chord" data-finger-positioning="x02210">Am</span>      <span class="chord" data-finger-positioning="x32010">C</span>`,
		"Today is gonna be the day",
		"<style>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q:\n%s", want, html)
		}
	}
	if res.PDF != nil {
		t.Error("PDF should be nil in HTML-only mode")
	}
	if fake.calls != 0 {
		t.Errorf("pdf converter called %d times in HTML-only mode", fake.calls)
	}
}

func TestConverter_DefaultStyleInjected(t *testing.T) {
	t.Parallel()

	css, err := assets.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		t.Fatal(err)
	}

	conv, err := NewConverter(withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: testSong, HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(res.HTML), "<style>"+css) {
		t.Error("default stylesheet not injected")
	}
}

func TestConverter_Styles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cssFile := filepath.Join(dir, "stage.css")
	if err := os.WriteFile(cssFile, []byte(".chord{color:lime}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		style    string
		input    string
		want     string
		excludes string
	}{
		{name: "css literal", style: ".chord{color:red}", want: "<style>.chord{color:red}</style>"},
		{name: "file path", style: cssFile, want: "<style>.chord{color:lime}</style>"},
		{name: "no style", style: "", excludes: "<style>"},
		{name: "user css appended", style: "a{}", input: "b{}", want: "<style>a{}\nb{}</style>"},
		{name: "user css only", style: "", input: "b{}", want: "<style>\nb{}</style>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			conv, err := NewConverter(WithStyle(tt.style), WithDictionary(songDict), withPDF(&fakePDF{}))
			if err != nil {
				t.Fatalf("NewConverter: %v", err)
			}
			res, err := conv.Convert(context.Background(), Input{Markdown: testSong, CSS: tt.input, HTMLOnly: true})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			html := string(res.HTML)
			if tt.want != "" && !strings.Contains(html, tt.want) {
				t.Errorf("HTML missing %q:\n%s", tt.want, html)
			}
			if tt.excludes != "" && strings.Contains(html, tt.excludes) {
				t.Errorf("HTML should not contain %q", tt.excludes)
			}
		})
	}
}

func TestConverter_AssetPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(base, "styles", "gig.css"), []byte(".gig{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv, err := NewConverter(WithAssetPath(base), WithStyle("gig"), withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: testSong, HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(res.HTML), "<style>.gig{}</style>") {
		t.Error("custom asset style not injected")
	}
}

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unknown style", []Option{WithStyle("nonexistent")}, ErrStyleNotFound},
		{"invalid style name", []Option{WithStyle("..secret")}, assets.ErrInvalidAssetName},
		{"missing style file", []Option{WithStyle("./missing/file.css")}, os.ErrNotExist},
		{"bad asset path", []Option{WithAssetPath("/definitely/not/here")}, ErrInvalidAssetPath},
		{"nil dictionary", []Option{WithDictionary(nil)}, ErrNilDictionary},
		{"missing chords file", []Option{WithChordsFile("/definitely/not/here.yaml", false)}, ErrChordsLoad},
		{"close without open", []Option{WithWrapper("", "</pre>")}, ErrInvalidWrapper},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := append(tt.opts, withPDF(&fakePDF{}))
			if _, err := NewConverter(opts...); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	WithTimeout(0)
}

func TestConverter_DictionaryIsPrivateCopy(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	d, ok := conv.Dictionary().(MapDictionary)
	if !ok {
		t.Fatalf("Dictionary() = %T, want MapDictionary", conv.Dictionary())
	}
	d["Am"] = "changed"

	fresh, err := DefaultDictionary()
	if err != nil {
		t.Fatalf("DefaultDictionary: %v", err)
	}
	if f, _ := fresh.Get("Am"); f != "x02210" {
		t.Errorf("built-in Am = %q after mutating a converter's dictionary", f)
	}
}

func TestConverter_ChordsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chords.yaml")
	if err := os.WriteFile(path, []byte("chords:\n  Am: custom-am\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	conv, err := NewConverter(WithChordsFile(path, false), withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	if f, _ := conv.Dictionary().Get("Am"); f != "custom-am" {
		t.Errorf("Am = %q, want custom-am", f)
	}
	if _, ok := conv.Dictionary().Get("G"); !ok {
		t.Error("built-in G should still resolve")
	}

	res, err := conv.Convert(context.Background(), Input{Markdown: testSong, HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(res.HTML), `data-finger-positioning="custom-am"`) {
		t.Error("custom fingering not rendered")
	}
}

func TestConverter_CustomWrapper(t *testing.T) {
	t.Parallel()

	conv, err := NewConverter(WithDictionary(songDict), WithWrapper("<code>", "</code>"), WithStyle(""), withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	res, err := conv.Convert(context.Background(), Input{Markdown: "```\nAm C\n```\n", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	// <pre><code>Am C no longer starts with the wrapper, so the line stays plain.
	if strings.Contains(string(res.HTML), `class="chord"`) {
		t.Errorf("unexpected chord markup:\n%s", res.HTML)
	}
}

func TestConverter_PDF(t *testing.T) {
	t.Parallel()

	fake := &fakePDF{pdf: []byte("%PDF-1.7")}
	conv, err := NewConverter(WithDictionary(songDict), withPDF(fake))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}

	page := &PageSettings{Size: "a4", Orientation: "landscape", Margin: 1}
	res, err := conv.Convert(context.Background(), Input{Markdown: testSong, Page: page})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if string(res.PDF) != "%PDF-1.7" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if fake.page != page {
		t.Error("page settings not forwarded")
	}
	if fake.html != string(res.HTML) {
		t.Error("PDF rendered from different HTML than returned")
	}

	if err := conv.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if !fake.closed {
		t.Error("Close did not close the PDF converter")
	}
}

func TestConverter_ConvertErrors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		fake    *fakePDF
		ctx     context.Context
		input   Input
		wantErr error
		wantMsg string
	}{
		{name: "empty markdown", fake: &fakePDF{}, ctx: context.Background(), input: Input{}, wantErr: ErrEmptyMarkdown},
		{name: "bad page", fake: &fakePDF{}, ctx: context.Background(), input: Input{Markdown: "x", Page: &PageSettings{Size: "x"}}, wantErr: ErrInvalidPageSize},
		{name: "cancelled", fake: &fakePDF{}, ctx: cancelled, input: Input{Markdown: "x"}, wantErr: context.Canceled},
		{name: "pdf failure", fake: &fakePDF{err: ErrBrowserConnect}, ctx: context.Background(), input: Input{Markdown: "x"}, wantErr: ErrBrowserConnect},
		{name: "panic recovered", fake: &fakePDF{panics: true}, ctx: context.Background(), input: Input{Markdown: "x"}, wantMsg: "internal error: renderer exploded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			conv, err := NewConverter(WithDictionary(songDict), withPDF(tt.fake))
			if err != nil {
				t.Fatalf("NewConverter: %v", err)
			}
			res, err := conv.Convert(tt.ctx, tt.input)
			if err == nil {
				t.Fatalf("expected error, got result %v", res)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestConverter_TitleAndSourceDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conv, err := NewConverter(WithDictionary(songDict), withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}

	res, err := conv.Convert(context.Background(), Input{
		Markdown:  "# Ignored\n\n![Am shape](diagrams/am.png)\n",
		Title:     "Setlist <1>",
		SourceDir: dir,
		HTMLOnly:  true,
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	html := string(res.HTML)
	if !strings.Contains(html, "<title>Setlist &lt;1&gt;</title>") {
		t.Errorf("explicit title not used:\n%s", html)
	}
	if !strings.Contains(html, `src="file://`) {
		t.Errorf("relative image not rewritten:\n%s", html)
	}
}

func TestConverter_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	conv, err := NewConverter(WithDictionary(songDict), WithLogger(logger), withPDF(&fakePDF{}))
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	if _, err := conv.Convert(context.Background(), Input{Markdown: testSong, HTMLOnly: true}); err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(buf.String(), "html ready") {
		t.Errorf("expected debug log, got %q", buf.String())
	}
}
