// Package binary provides bounds-checked reads over a FLAC file's metadata
// blocks. Every block-parsing function in internal/flac goes through
// SafeReader instead of raw ReadAt calls, so a truncated or crafted file
// produces a descriptive error instead of a panic or a silent short read.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SafeReader wraps an io.ReaderAt with bounds checking and error messages
// that carry the file path and the field being read, for use while
// walking a FLAC metadata block chain.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader over r, which holds size bytes
// read from path.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// ReadAt reads len(b) bytes at off, rejecting the read outright if any
// part of it falls outside the file. what names the field being read, for
// the error message.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (file size: %d) while reading %s",
			sr.path, off, sr.size, what)
	}

	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d would exceed file size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d bytes, expected %d",
			sr.path, what, off, n, len(b))
	}

	return nil
}

// Read reads a big-endian value of type T at off. FLAC packs its metadata
// block header, STREAMINFO, PICTURE, APPLICATION id, and CUESHEET fields
// big-endian, so this is the reader every block parser in internal/flac
// reaches for by default; ReadLE in endian.go covers the one field FLAC
// stores little-endian instead (Vorbis comment length prefixes).
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	var zero T
	size := sizeOf(zero)

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(binary.BigEndian.Uint16(buf))
	case uint32:
		val = T(binary.BigEndian.Uint32(buf))
	case uint64:
		val = T(binary.BigEndian.Uint64(buf))
	}

	return val, nil
}

// sizeOf reports the byte width of an unsigned integer type from its zero
// value, shared by Read and ReadLE.
func sizeOf[T uint8 | uint16 | uint32 | uint64](zero T) int {
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}
