package chordsheet

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-chordsheet/internal/fileutil"
	"github.com/alnah/go-chordsheet/internal/hints"
	"github.com/alnah/go-chordsheet/internal/process"
)

// pdfConverter turns a finished HTML document into PDF bytes.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error)
	Close() error
}

// pdfRenderer prints an HTML file on disk. Rendering from a file lets
// relative image paths resolve as file:// URLs.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error)
	Close() error
}

// rodRenderer prints through a headless Chrome driven by go-rod. The
// browser starts on first use; rod downloads Chromium when none is found.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration // per page, on top of the caller's deadline
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// newLauncher configures Chrome from ROD_BROWSER_BIN and ROD_NO_SANDBOX.
// The sandbox is also disabled in CI and for custom binaries, which are
// usually container images without user namespaces.
func newLauncher() *launcher.Launcher {
	l := launcher.New()
	bin := os.Getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	switch os.Getenv("ROD_NO_SANDBOX") {
	case "1", "true":
		return l.NoSandbox(true)
	}
	if bin != "" || hints.InCI() {
		return l.NoSandbox(true)
	}
	return l
}

func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := newLauncher()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher, r.browser = l, b
	return nil
}

// Close shuts Chrome down and kills helper processes left in its group.
func (r *rodRenderer) Close() error {
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Cleanup()
	r.launcher, r.browser = nil, nil
	return err
}

// RenderFromFile loads filePath in a new tab and prints it. Page loading
// and printing are bounded by ctx and by the renderer timeout, whichever
// ends first.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	tab, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer tab.Close()

	bounded := tab.Context(ctx)
	if r.timeout > 0 {
		bounded = bounded.Timeout(r.timeout)
		defer bounded.CancelTimeout()
	}

	// A page error caused by ctx is reported as ctx's error.
	if err := bounded.WaitLoad(); err != nil {
		return nil, ctxOr(ctx, fmt.Errorf("%w: %v", ErrPageLoad, err))
	}

	stream, err := bounded.PDF(buildPDFOptions(page))
	if err != nil {
		return nil, ctxOr(ctx, fmt.Errorf("%w: %v", ErrPDFGeneration, err))
	}
	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// ctxOr returns ctx.Err() when ctx is done, else err.
func ctxOr(ctx context.Context, err error) error {
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	return err
}

// buildPDFOptions maps page settings to Chrome print options.
// A nil page uses DefaultPageSettings.
func buildPDFOptions(page *PageSettings) *proto.PagePrintToPDF {
	if page == nil {
		page = DefaultPageSettings()
	}
	width, height := page.dimensions()
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter converts HTML to PDF by writing it to a temp file and
// rendering that file.
type rodConverter struct {
	renderer pdfRenderer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	return &rodConverter{renderer: newRodRenderer(timeout)}
}

// ToPDF converts HTML content to PDF bytes.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	defer cleanup()

	return c.renderer.RenderFromFile(ctx, tmpPath, page)
}

// Close releases browser resources.
func (c *rodConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)
