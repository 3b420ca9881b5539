package chorddata

import "errors"

// Sentinel errors for chord data operations.
var (
	// ErrChordFileNotFound indicates the chord file does not exist.
	ErrChordFileNotFound = errors.New("chord file not found")

	// ErrChordFileRead indicates an I/O error while reading a chord file.
	ErrChordFileRead = errors.New("failed to read chord file")

	// ErrChordFileParse indicates the chord file could not be decoded.
	ErrChordFileParse = errors.New("failed to parse chord file")

	// ErrChordFileTooLarge indicates the chord file exceeds MaxFileSize.
	ErrChordFileTooLarge = errors.New("chord file too large")

	// ErrUnsupportedFormat indicates an unknown chord file extension.
	ErrUnsupportedFormat = errors.New("unsupported chord file format")

	// ErrInvalidChord indicates a chord entry that can never match a token.
	ErrInvalidChord = errors.New("invalid chord entry")

	// ErrEmptyDictionary indicates a chord source with no entries.
	ErrEmptyDictionary = errors.New("chord dictionary is empty")
)
