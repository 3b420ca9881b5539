package chordsheet

import (
	"fmt"
	"strings"
)

// Paper sizes accepted by PageSettings.Size, case-insensitively.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeA5     = "a5"
	PageSizeLegal  = "legal"
)

// Orientations accepted by PageSettings.Orientation, case-insensitively.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paper is a portrait sheet in inches.
type paper struct{ width, height float64 }

var papers = map[string]paper{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeA5:     {5.83, 8.27},
	PageSizeLegal:  {8.5, 14},
}

// PageSizes lists the accepted paper names.
func PageSizes() []string {
	return []string{PageSizeLetter, PageSizeA4, PageSizeA5, PageSizeLegal}
}

// PageSettings is the PDF page layout. A nil *PageSettings means
// DefaultPageSettings.
type PageSettings struct {
	Size        string
	Orientation string
	Margin      float64 // inches, all four sides
}

func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate reports ErrInvalidPageSize, ErrInvalidOrientation or
// ErrInvalidMargin. A nil receiver is valid.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := papers[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q (want one of %s)", ErrInvalidPageSize, p.Size, strings.Join(PageSizes(), ", "))
	}
	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// dimensions returns the oriented sheet in inches; unknown sizes fall
// back to letter.
func (p *PageSettings) dimensions() (width, height float64) {
	sheet, ok := papers[strings.ToLower(p.Size)]
	if !ok {
		sheet = papers[PageSizeLetter]
	}
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		return sheet.height, sheet.width
	}
	return sheet.width, sheet.height
}

// Input is one song sheet to convert.
type Input struct {
	Markdown  string        // song sheet (required)
	SourceDir string        // directory for resolving relative images and links
	CSS       string        // extra CSS appended after the converter style
	Title     string        // document title; defaults to the first "# " heading
	Page      *PageSettings // nil = defaults
	HTMLOnly  bool          // skip PDF rendering
}

// ConvertResult carries the rendered document.
type ConvertResult struct {
	HTML []byte
	PDF  []byte // nil when Input.HTMLOnly is set
}
