package flacscan

import (
	"github.com/wavepath/flacscan/internal/types"
)

// OutOfBoundsError is a re-export of types.OutOfBoundsError so callers
// never need to import internal/types directly.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is returned when a path does not hold a FLAC
// stream.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is returned when a FLAC stream's structure is
// invalid in a way that prevents further parsing.
type CorruptedFileError = types.CorruptedFileError

// Warning describes a non-fatal issue encountered while scanning a file.
// Every degradation path in the tag and splitter pipeline reports one of
// these instead of failing the whole scan.
type Warning = types.Warning
