package types

import (
	"io"

	"github.com/wavepath/flacscan/internal/binary"
)

// Format represents the detected container format. flacscan only scans
// FLAC streams; FormatUnknown is returned for anything else so callers
// get a typed rejection instead of a panic deep in the metadata blocks.
type Format int

const (
	// FormatUnknown represents a file that is not a recognized FLAC stream.
	FormatUnknown Format = iota
	// FormatFLAC represents a native FLAC stream ("fLaC" magic at offset 0).
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	default:
		return "unknown"
	}
}

// DetectFormat determines whether r holds a FLAC stream by checking the
// "fLaC" magic bytes at offset 0.
func DetectFormat(r io.ReaderAt, size int64, path string) (Format, error) {
	if size < 4 {
		return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "file too small"}
	}

	sr := binary.NewSafeReader(r, size, path)
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "file magic bytes"); err != nil {
		return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "failed to read file header"}
	}

	if string(magic) == "fLaC" {
		return FormatFLAC, nil
	}
	return FormatUnknown, &UnsupportedFormatError{Path: path, Reason: "not a FLAC stream"}
}
