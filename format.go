package flacscan

import (
	"io"

	"github.com/wavepath/flacscan/internal/types"
)

// Format is a re-export of types.Format.
type Format = types.Format

// Re-export the format constants. flacscan only recognizes native FLAC
// streams; anything else detects as FormatUnknown.
const (
	FormatUnknown = types.FormatUnknown
	FormatFLAC    = types.FormatFLAC
)

// DetectFormat reports whether r holds a FLAC stream.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	return types.DetectFormat(r, size, path)
}
