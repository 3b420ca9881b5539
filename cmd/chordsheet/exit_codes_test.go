package main

// Notes:
// - exitCodeFor: every sentinel the commands can surface, plus wrapped
//   errors to verify the errors.Is chain.
// - Exit code constants: Unix conventions and custom codes below 126.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	chordsheet "github.com/alnah/go-chordsheet"
	"github.com/alnah/go-chordsheet/internal/chorddata"
	"github.com/alnah/go-chordsheet/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", chordsheet.ErrBrowserConnect, ExitBrowser},
		{"page create", chordsheet.ErrPageCreate, ExitBrowser},
		{"page load", chordsheet.ErrPageLoad, ExitBrowser},
		{"pdf generation", chordsheet.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", chordsheet.ErrBrowserConnect), ExitBrowser},
		{"browser beats io", errors.Join(os.ErrNotExist, chordsheet.ErrPDFGeneration), ExitBrowser},
		{"io beats usage", fmt.Errorf("%w: %w", ErrConversionsFail, ErrWritePDF), ExitIO},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"write html", ErrWriteHTML, ExitIO},
		{"output dir", ErrCreateOutputDir, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"chord file missing", fmt.Errorf("%w: %w", chordsheet.ErrChordsLoad, chorddata.ErrChordFileNotFound), ExitIO},
		{"chord file read", chorddata.ErrChordFileRead, ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config value", config.ErrInvalidValue, ExitUsage},
		{"empty markdown", chordsheet.ErrEmptyMarkdown, ExitUsage},
		{"invalid page size", chordsheet.ErrInvalidPageSize, ExitUsage},
		{"invalid orientation", chordsheet.ErrInvalidOrientation, ExitUsage},
		{"invalid margin", chordsheet.ErrInvalidMargin, ExitUsage},
		{"invalid wrapper", chordsheet.ErrInvalidWrapper, ExitUsage},
		{"invalid asset path", chordsheet.ErrInvalidAssetPath, ExitUsage},
		{"style not found", chordsheet.ErrStyleNotFound, ExitUsage},
		{"chord file parse", fmt.Errorf("%w: %w", chordsheet.ErrChordsLoad, chorddata.ErrChordFileParse), ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},

		// Batch failures take the code of their cause
		{"batch io", fmt.Errorf("%w: 1 of 2: %w", ErrConversionsFail, ErrReadMarkdown), ExitIO},
		{"batch browser", fmt.Errorf("%w: 2 of 2: %w", ErrConversionsFail, chordsheet.ErrPageLoad), ExitBrowser},

		// General errors (exit 1)
		{"unknown chord", ErrUnknownChord, ExitGeneral},
		{"generic", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("standard codes changed: %d %d %d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code <= ExitUsage || code >= 126 {
			t.Errorf("custom code %d outside (2, 126)", code)
		}
	}
}
