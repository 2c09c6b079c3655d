// Package flacscan extracts playable metadata from FLAC files, including
// decomposing a single physical file that packs multiple logical tracks
// behind an embedded cue sheet, and provides a streaming byte-pipeline
// filter that realigns onto a valid FLAC frame boundary after a seek.
//
// # Quick Start
//
// Reading metadata from a FLAC file:
//
//	file, err := flacscan.Open("album.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(file.Tags.GetString("ARTIST"), "-", file.Tags.GetString("TITLE"))
//
// A file whose cue sheet describes several tracks can be read back one
// track at a time via GetTag's anchor parameter:
//
//	track, warnings, err := flacscan.GetTag("album.flac", "2")
//
// # Philosophy
//
// 1. Graceful degradation: a corrupted or unusual file returns the best
// partial tag map it can, plus warnings, rather than failing the whole
// scan. Only I/O-level failures (file not found, permission denied) and a
// file that does not carry the fLaC signature return an error.
//
// 2. Narrow interfaces: the FLAC container parser, cue-sheet parser,
// catalog, and ID3 mapper are all consumed through small interfaces with
// working default adapters, so callers can substitute their own without
// touching the core tag-normalization and cue-splitting logic.
//
// 3. Bounds-checked reads: every metadata block walk goes through
// internal/binary.SafeReader, so a truncated or malicious file produces a
// descriptive error instead of a panic or an out-of-bounds read.
//
// # Architecture
//
//	[File]              - Entry point with Open()/GetTag()
//	  ├─ [ContainerScanner] - STREAMINFO, VORBIS_COMMENT, PICTURE, APPLICATION, CUESHEET
//	  ├─ [tagmap.Map]       - vendor-key renaming and date/BPM coercion
//	  ├─ [flac.ResolveArtwork] - PICTURE / COVERART / Escient artwork priority
//	  ├─ [splitter.Split]   - five pluggable per-track recovery strategies
//	  └─ [align.Aligner]    - streaming frame-boundary realignment
//
// # Advanced Usage
//
// Scan multiple files concurrently:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//	files, err := flacscan.OpenMany(ctx, paths...)
//
// Inject fakes for the four narrow collaborators in tests:
//
//	tags, warnings, err := flacscan.GetTag("album.flac", "",
//	    flacscan.WithCatalog(myCatalog),
//	    flacscan.WithCueParser(myCueParser),
//	)
//
// Realign a byte stream after a mid-stream seek:
//
//	a := align.New()
//	n := a.Align(&chunk, len(chunk), 0)
//
// # Error Handling
//
// flacscan distinguishes infrastructure failures from modeled
// degradations:
//
//   - Infrastructure failures (unreadable file, permission error) are
//     wrapped with github.com/pkg/errors and returned from GetTag/Open.
//   - Modeled degradations never fail the scan. An unreadable metadata
//     block (e.g. a truncated PICTURE block) and the splitter strategies'
//     own diagnostics are collected as Warnings on the returned File/tag
//     map; a malformed cue-sheet line or a Vorbis comment without '=' is
//     skipped without a Warning.
//
// # Performance
//
//   - Single walk: the container scanner walks the metadata chain once;
//     Scan then re-decodes STREAMINFO through mewkiz/flac.
//   - Streaming: the frame aligner and stream prescanner operate on
//     chunks without buffering the whole file.
//   - Concurrent: OpenMany scans independent files in parallel, bounded
//     to GOMAXPROCS workers.
package flacscan
