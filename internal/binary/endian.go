package binary

import "encoding/binary"

// ReadLE reads a little-endian value of type T at off. FLAC stores every
// numeric field big-endian except the Vorbis comment block's length
// prefixes (vendor length, comment count, per-comment length), which the
// Vorbis comment spec inherited little-endian from Ogg; ReadLE exists for
// those three fields.
func ReadLE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
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
		val = T(binary.LittleEndian.Uint16(buf))
	case uint32:
		val = T(binary.LittleEndian.Uint32(buf))
	case uint64:
		val = T(binary.LittleEndian.Uint64(buf))
	}

	return val, nil
}
