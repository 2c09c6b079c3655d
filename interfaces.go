package flacscan

import (
	"context"
	"io"

	"github.com/wavepath/flacscan/internal/types"
)

// TagMap is a re-export of types.TagMap, the canonical key/value tag
// vocabulary every scan and split operation reads and writes.
type TagMap = types.TagMap

// ScanResult is a re-export of types.ScanResult, the full return value of
// a ContainerScanner pass over one FLAC file.
type ScanResult = types.ScanResult

// Record is a re-export of types.Record, the per-track summary persisted
// through a Catalog.
type Record = types.Record

// Value and Kind are re-exports of types.Value / types.Kind, the tagged
// union every TagMap entry holds.
type Value = types.Value
type Kind = types.Kind

// KindBytes is a re-export of types.KindBytes, useful for callers that
// need to special-case binary values (e.g. artwork) when printing a
// TagMap.
const KindBytes = types.KindBytes

// ContainerScanner is the narrow interface GetTag uses to read a FLAC
// file's stream info, tags, pictures, application blocks, and any
// embedded cue sheet. The default implementation lives in internal/flac;
// callers may substitute their own (e.g. to scan from a network source).
type ContainerScanner interface {
	Scan(path string) (ScanResult, error)
	ScanReader(r io.ReaderAt, size int64, path string) (ScanResult, error)
	FindFrame(path string, ms int) (int64, error)
}

// CueParser is the narrow interface GetTag and the splitter's Strategy D
// use to turn cue-sheet grammar text into per-track tag maps.
type CueParser interface {
	Parse(lines []string, dir, pathOrEmpty string, embedded bool) (map[int]TagMap, error)
	ProcessAnchor(track TagMap) TagMap
}

// Catalog is the narrow interface GetTag persists per-track records
// through once a multi-track file has been split.
type Catalog interface {
	UpdateOrCreate(ctx context.Context, rec Record) error
}

// ID3Mapper is the narrow interface the Tag Mapper calls into when a
// container reports a coexisting ID3 tag version.
type ID3Mapper interface {
	DoTagMapping(tags TagMap, noOverwrite bool) TagMap
}
