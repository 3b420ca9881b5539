package main

import (
	"errors"
	"os"
	"slices"

	chordsheet "github.com/alnah/go-chordsheet"
	"github.com/alnah/go-chordsheet/internal/chorddata"
	"github.com/alnah/go-chordsheet/internal/config"
)

// Process exit codes. Custom codes stay below 126, which shells reserve.
const (
	ExitSuccess = 0
	ExitGeneral = 1 // unexpected errors, unknown chord lookups
	ExitUsage   = 2 // bad flags, config or option values
	ExitIO      = 3 // unreadable input, unwritable output
	ExitBrowser = 4 // Chrome failed to start or print
)

// exitClasses maps error causes to exit codes. The first class holding a
// match wins, so browser failures beat the I/O errors they may wrap.
var exitClasses = []struct {
	code   int
	causes []error
}{
	{ExitBrowser, []error{
		chordsheet.ErrBrowserConnect,
		chordsheet.ErrPageCreate,
		chordsheet.ErrPageLoad,
		chordsheet.ErrPDFGeneration,
	}},
	{ExitIO, []error{
		os.ErrNotExist,
		os.ErrPermission,
		chorddata.ErrChordFileNotFound,
		chorddata.ErrChordFileRead,
		ErrReadMarkdown,
		ErrReadInput,
		ErrWritePDF,
		ErrWriteHTML,
		ErrCreateOutputDir,
		ErrNoInput,
	}},
	{ExitUsage, []error{
		ErrUsage,
		config.ErrConfigNotFound,
		config.ErrEmptyConfigName,
		config.ErrConfigParse,
		config.ErrFieldTooLong,
		config.ErrInvalidValue,
		chordsheet.ErrEmptyMarkdown,
		chordsheet.ErrInvalidPageSize,
		chordsheet.ErrInvalidOrientation,
		chordsheet.ErrInvalidMargin,
		chordsheet.ErrInvalidWrapper,
		chordsheet.ErrInvalidAssetPath,
		chordsheet.ErrStyleNotFound,
		chordsheet.ErrChordsLoad,
		ErrInvalidExtension,
		ErrInvalidWorkerCount,
		ErrInvalidTimeout,
		ErrUnsupportedShell,
	}},
}

// exitCodeFor classifies err, matching wrapped causes with errors.Is.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	for _, class := range exitClasses {
		if slices.ContainsFunc(class.causes, func(cause error) bool { return errors.Is(err, cause) }) {
			return class.code
		}
	}
	return ExitGeneral
}
