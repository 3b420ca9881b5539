package pipeline

import (
	"context"

	"github.com/alnah/go-chordsheet/internal/chords"
)

// ChordAnnotator defines the contract for chord annotation of HTML.
type ChordAnnotator interface {
	Annotate(ctx context.Context, htmlContent string) (string, error)
}

// ChordAnnotation marks up chord lines and section markers inside
// preformatted blocks of a rendered song sheet.
type ChordAnnotation struct {
	transformer *chords.Transformer
}

// NewChordAnnotation creates a ChordAnnotation backed by dict.
// Options are forwarded to chords.NewTransformer.
func NewChordAnnotation(dict chords.Dictionary, opts ...chords.Option) *ChordAnnotation {
	return &ChordAnnotation{transformer: chords.NewTransformer(dict, opts...)}
}

// Annotate applies the document transform to htmlContent.
func (a *ChordAnnotation) Annotate(ctx context.Context, htmlContent string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.transformer.Transform(htmlContent), nil
}

// Compile-time interface check.
var _ ChordAnnotator = (*ChordAnnotation)(nil)
