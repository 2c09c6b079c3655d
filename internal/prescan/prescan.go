// Package prescan implements the stream prescanner: it accumulates the
// leading bytes of a FLAC stream as they arrive, without needing the
// whole file, and derives an optimistic duration/bitrate estimate once
// enough of the header has been buffered.
package prescan

import (
	"context"
	"encoding/binary"
	"os"

	"github.com/wavepath/flacscan/internal/types"
)

// minScanBytes is the accumulation threshold before a probe attempt.
const minScanBytes = 32768

// Scanner is the narrow interface the Prescanner needs from a container
// scanner: enough to run a full metadata walk over the spooled bytes.
type Scanner interface {
	Scan(path string) (types.ScanResult, error)
}

// Catalog is the narrow interface scanBitrate reports derived duration
// through, as a side effect.
type Catalog interface {
	UpdateOrCreate(ctx context.Context, rec types.Record) error
}

// Prescanner accumulates chunks of a FLAC stream until enough of the
// header has arrived to run a real container scan against a spooled
// temp file. The zero value is not usable; construct with New.
type Prescanner struct {
	scanner Scanner
	catalog Catalog
	scanbuf []byte
}

// New returns a Prescanner that spools to a container scan via scanner,
// reporting derived duration to catalog.
func New(scanner Scanner, catalog Catalog) *Prescanner {
	return &Prescanner{scanner: scanner, catalog: catalog}
}

// Result is what a completed probe yields: the container info recovered
// from the spooled bytes, plus the average bitrate derived from the
// full stream length when the caller supplied one.
type Result struct {
	Info       types.ContainerInfo
	AvgBitrate int // bits per second; 0 if length was unknown or duration was rejected
}

// ParseStream appends chunk to the accumulation buffer. Once at least
// minScanBytes have accumulated, it spools the buffer to a temp file,
// scans it, and returns the derived Result. length, if positive, is the
// full stream's byte length, used to derive AvgBitrate.
//
// Returns (result, true, nil) once a scan has been attempted; the second
// return reports whether result is meaningful (false while still
// accumulating, or when the probe found no samplerate).
func (p *Prescanner) ParseStream(chunk []byte, length int64) (Result, bool, error) {
	p.scanbuf = append(p.scanbuf, chunk...)
	if len(p.scanbuf) < minScanBytes {
		return Result{}, false, nil
	}

	f, err := os.CreateTemp("", "flacscan-prescan-*.flac")
	if err != nil {
		return Result{}, false, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err := f.Write(p.scanbuf); err != nil {
		return Result{}, false, err
	}

	scan, err := p.scanner.Scan(f.Name())
	if err != nil {
		return Result{}, false, nil
	}
	if scan.Info.SampleRate == 0 {
		return Result{}, false, nil
	}

	result := Result{Info: scan.Info}
	applyDurationHeuristic(&result, len(p.scanbuf), audioOffset(p.scanbuf), length)

	return result, true, nil
}

// applyDurationHeuristic bounds the container's reported duration against
// an optimistic upper bound assuming an 8:1 compression ratio, and
// derives an average bitrate when the full stream length is known.
func applyDurationHeuristic(result *Result, buflen, audioOffset int, length int64) {
	info := &result.Info
	if info.Channels == 0 || info.BitsPerSample == 0 || info.SampleRate == 0 {
		return
	}

	bytesPerSample := info.BitsPerSample / 8
	if bytesPerSample == 0 {
		return
	}

	maxSamples := float64(buflen-audioOffset) * 8 / float64(info.Channels*bytesPerSample)
	totalSamples := info.DurationSeconds * float64(info.SampleRate)

	if totalSamples < 0 || totalSamples > maxSamples {
		info.DurationSeconds = 0
		return
	}

	if length > 0 && info.DurationSeconds > 0 {
		songLengthMS := info.DurationSeconds * 1000
		result.AvgBitrate = int(8000 * float64(length-int64(audioOffset)) / songLengthMS)
	}
}

// ScanBitrate always declines to report a bitrate (a FLAC header alone
// can't reliably estimate one) but reports the prescanned duration to
// the catalog as a side effect.
func (p *Prescanner) ScanBitrate(ctx context.Context, path string, info types.ContainerInfo) (int, error) {
	_ = p.catalog.UpdateOrCreate(ctx, types.Record{Path: path, Info: info})
	return -1, nil
}

// FindFrameBoundaries delegates to a ContainerScanner's frame-seek API,
// converting timeSec to whole milliseconds.
func FindFrameBoundaries(finder interface {
	FindFrame(path string, ms int) (int64, error)
}, path string, timeSec float64) (int64, error) {
	return finder.FindFrame(path, int(timeSec*1000))
}

// audioOffset returns the byte offset where the metadata block chain
// ends and audio frames begin, by walking the same block headers the
// container scanner does, without decoding block contents. Returns
// len(data) if the chain never terminates within data (still buffering).
func audioOffset(data []byte) int {
	if len(data) < 4 || string(data[0:4]) != "fLaC" {
		return 0
	}
	offset := 4
	for offset+4 <= len(data) {
		header := binary.BigEndian.Uint32(data[offset : offset+4])
		isLast := header>>31 == 1
		blockLength := int(header & 0x00FFFFFF)
		offset += 4 + blockLength
		if isLast {
			return offset
		}
	}
	return len(data)
}
