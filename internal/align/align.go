// Package align implements the FLAC streaming frame aligner: a stateful
// byte-stream filter that locates the first valid audio frame header in an
// unaligned byte window using sync-pattern matching plus an 8-bit CRC
// check over a variable-length header prefix.
package align

import (
	"bytes"

	"github.com/icza/bitio"
	"github.com/wavepath/flacscan/internal/crc8"
)

// searchWindow is the minimum buffered byte count the search path
// requires before it starts popping candidate sync bytes.
const searchWindow = 32

// Aligner is a per-stream frame-alignment filter. The zero value is not
// usable; construct with New.
type Aligner struct {
	inbuf   []byte
	aligned bool
	bytes   uint64
}

// New returns a fresh Aligner bound to a new stream.
func New() *Aligner {
	return &Aligner{}
}

// Bytes reports the running count of bytes consumed while searching for
// the frame boundary (bytes discarded before the aligning header).
func (a *Aligner) Bytes() uint64 { return a.bytes }

// Aligned reports whether a valid frame header has been located.
func (a *Aligner) Aligned() bool { return a.aligned }

// Align filters one chunk of stream data. chunk is both input and output:
// on entry it holds chunkSize bytes of new data starting at offset; on
// return it has been overwritten with the bytes that should be emitted
// downstream. The return value is the count of bytes still buffered
// in-process for the next call, following the chunkSize+1 convention
// documented for the emission step.
func (a *Aligner) Align(chunk *[]byte, chunkSize, offset int) int {
	// Fast path: already aligned and nothing buffered — pass through.
	if a.aligned && len(a.inbuf) == 0 {
		return 0
	}

	// Full-file path: an unbuffered stream whose first bytes are the FLAC
	// magic aligns itself.
	if len(a.inbuf) == 0 {
		data := *chunk
		if offset+4 <= len(data) && bytes.Equal(data[offset:offset+4], []byte("fLaC")) {
			a.aligned = true
			return 0
		}
	}

	// Search path.
	data := *chunk
	if offset < len(data) {
		a.inbuf = append(a.inbuf, data[offset:]...)
	}

	for !a.aligned && len(a.inbuf) > searchWindow {
		tag := a.inbuf[0]
		a.inbuf = a.inbuf[1:]
		a.bytes++

		if tag != 0xff {
			continue
		}
		if len(a.inbuf) < 4 {
			break
		}

		if !syncMatches(tag, a.inbuf) {
			continue
		}

		blockSizeNibble, sampleRateNibble, channelAssignment, sampleSizeBits, ok := headerFields(a.inbuf)
		if !ok {
			continue
		}
		if !fieldsValid(blockSizeNibble, sampleRateNibble, channelAssignment, sampleSizeBits) {
			continue
		}

		off := headerLength(a.inbuf, blockSizeNibble, sampleRateNibble)
		if off+1 > len(a.inbuf) {
			// Not enough buffered data yet to validate the CRC; put the
			// tag back and wait for more bytes on the next call.
			a.inbuf = append([]byte{tag}, a.inbuf...)
			a.bytes--
			break
		}

		got := crc8.Compute(append([]byte{tag}, a.inbuf[:off]...))
		if got == a.inbuf[off] {
			a.inbuf = append([]byte{tag}, a.inbuf...)
			a.bytes--
			a.aligned = true
			break
		}
	}

	return a.emit(chunk, chunkSize)
}

// syncMatches checks the 17-bit sync pattern formed from tag and the next
// three buffered bytes.
func syncMatches(tag byte, inbuf []byte) bool {
	u32 := uint32(inbuf[0])<<24 | uint32(inbuf[1])<<16 | uint32(inbuf[2])<<8 | uint32(inbuf[3])
	t := uint32(tag)<<24 | (u32 >> 8)
	return t&0xfff80000 == 0xfff80000
}

// headerFields decodes the block-size, sample-rate, channel-assignment
// and sample-size bit fields from the two header bytes following the
// sync/blocking-strategy byte.
func headerFields(inbuf []byte) (blockSize, sampleRate, channelAssign, sampleSize byte, ok bool) {
	if len(inbuf) < 3 {
		return 0, 0, 0, 0, false
	}
	br := bitio.NewReader(bytes.NewReader(inbuf[1:3]))

	bs, err := br.ReadBits(4)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	sr, err := br.ReadBits(4)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	ca, err := br.ReadBits(4)
	if err != nil {
		return 0, 0, 0, 0, false
	}
	ss, err := br.ReadBits(3)
	if err != nil {
		return 0, 0, 0, 0, false
	}

	return byte(bs), byte(sr), byte(ca), byte(ss), true
}

// fieldsValid applies the frame-header field constraints that reject
// false-positive sync matches.
func fieldsValid(blockSizeNibble, sampleRateNibble, channelAssignment, sampleSizeBits byte) bool {
	if blockSizeNibble == 0 {
		return false
	}
	if sampleRateNibble == 0x0f {
		return false
	}
	if channelAssignment >= 11 {
		return false
	}
	return sampleSizeBits != 0b011 && sampleSizeBits != 0b111
}

// headerLength computes how many inbuf bytes (excluding the popped tag
// and the trailing CRC byte) belong to the candidate header.
func headerLength(inbuf []byte, blockSizeNibble, sampleRateNibble byte) int {
	off := 4

	if len(inbuf) > 3 {
		count := leadingOnes(inbuf[3])
		if count > 0 {
			off += count - 1
		}
	}

	switch blockSizeNibble {
	case 6:
		off += 2
	case 7:
		off += 1
	}

	switch sampleRateNibble {
	case 12:
		off += 1
	case 13, 14:
		off += 2
	}

	return off
}

// leadingOnes counts consecutive 1 bits from the top of b.
func leadingOnes(b byte) int {
	n := 0
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) == 0 {
			break
		}
		n++
	}
	return n
}

// emit drains the aligned buffer back into the caller's chunk slot,
// preserving the exact chunkSize+1 convention call sites depend on.
func (a *Aligner) emit(chunk *[]byte, chunkSize int) int {
	if !a.aligned {
		*chunk = (*chunk)[:0]
		return 0
	}

	if chunkSize < len(a.inbuf) {
		keep := len(a.inbuf) - chunkSize - 1
		out := make([]byte, keep)
		copy(out, a.inbuf[:keep])
		a.inbuf = a.inbuf[keep:]
		*chunk = out
		return chunkSize + 1
	}

	out := make([]byte, len(a.inbuf))
	copy(out, a.inbuf)
	a.inbuf = nil
	*chunk = out
	return 0
}
