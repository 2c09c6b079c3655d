package flacscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/wavepath/flacscan/internal/catalog"
	"github.com/wavepath/flacscan/internal/cue"
	"github.com/wavepath/flacscan/internal/flac"
	"github.com/wavepath/flacscan/internal/id3map"
	"github.com/wavepath/flacscan/internal/splitter"
	"github.com/wavepath/flacscan/internal/tagmap"
	"github.com/wavepath/flacscan/internal/types"
)

// File is the result of scanning one physical FLAC file: its resolved
// tag map (a playlist tag map if the file's cue sheet describes more
// than one track) and any warnings collected along the way.
//
// File uses lazy loading in spirit only: unlike the teacher's original
// multi-format File, a FLAC file's tags, technical info, and artwork are
// all recovered in a single container-scan pass, so there is nothing
// left to defer.
type File struct {
	// Path to the scanned file.
	Path string

	// Tags is the resolved canonical tag map. For a single-track file
	// this is the whole story; for a multi-track file this is the
	// playlist-level map (CT="fec"), with per-track maps available via
	// GetTag's anchor parameter or the Catalog the scan was configured
	// with.
	Tags TagMap

	// Warnings collected while scanning, in the order they occurred.
	Warnings []Warning
}

// Open scans path and returns its resolved tag map.
//
// Example:
//
//	file, err := flacscan.Open("album.flac")
//	if err != nil {
//		return err
//	}
//	fmt.Println(file.Tags.GetString("ARTIST"))
func Open(path string, opts ...Option) (*File, error) {
	tags, warnings, err := GetTag(path, "", opts...)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Tags: tags, Warnings: warnings}, nil
}

// OpenContext is a thin, context-aware wrapper around Open.
func OpenContext(ctx context.Context, path string, opts ...Option) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany scans multiple files concurrently, bounded to GOMAXPROCS
// workers, and returns results in input order. The first worker error
// cancels the remaining work.
func OpenMany(ctx context.Context, paths ...string) ([]*File, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]*File, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			file, err := Open(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = file
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// resolveOptions fills in the default A1-A4 adapters, logger, and
// artwork-suppression toggle for whichever options the caller didn't
// override.
func resolveOptions(path string, opts []Option) *openOptions {
	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.containerScanner == nil {
		o.containerScanner = flac.Scanner{}
	}
	if o.cueParser == nil {
		o.cueParser = cue.New()
	}
	if o.catalog == nil {
		o.catalog = catalog.New()
	}
	if o.id3Mapper == nil {
		o.id3Mapper = id3map.New(path)
	}
	if o.logger == nil {
		o.logger = logrus.StandardLogger()
	}
	return o
}

// GetTag scans path and returns its resolved tag map.
//
// When the file's embedded cue sheet describes multiple logical tracks
// and anchor names one of them (a fragment identifier, e.g. "2" for the
// track whose URI ends in "#2"), the returned map is that single
// track's tag map instead of the playlist-level map.
func GetTag(path string, anchor string, opts ...Option) (TagMap, []Warning, error) {
	o := resolveOptions(path, opts)

	scan, err := o.containerScanner.Scan(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "scan %s", path)
	}
	if scan.Info.SampleRate == 0 {
		return types.NewTagMap(), scan.Warnings, nil
	}

	base := buildBaseTagMap(scan, o)

	lines, source := cueSheetLines(scan, base)
	if source == "" {
		return base, scan.Warnings, nil
	}

	secs := base.GetString("SECS")
	lines = append(lines, "    REM END "+secs)
	base.SetString("FILENAME", path)

	dir := filepath.Dir(path)
	fileURL := canonicalFileURL(path)
	tracks, err := o.cueParser.Parse(lines, dir, fileURL, true)
	if err != nil || len(tracks) == 0 {
		return base, scan.Warnings, nil
	}

	count, splitWarnings := splitter.Split(scan, tracks, o.cueParser)
	warnings := append(append([]types.Warning{}, scan.Warnings...), splitWarnings...)
	if count == 0 {
		o.logger.WithFields(logrus.Fields{"path": path, "stage": "splitter"}).
			Warn("no strategy could split embedded cue tracks")
		return base, warnings, nil
	}

	markPlaylist(base, tracks)

	anchorMatch := persistTracks(o, path, fileURL, scan.Info, base, tracks, anchor)
	if anchorMatch != nil {
		return anchorMatch, warnings, nil
	}

	return base, warnings, nil
}

// buildBaseTagMap runs C3 (info injection), C2 (vendor rename/coercion),
// and C4 (artwork resolution) over the scan's tags.
func buildBaseTagMap(scan types.ScanResult, o *openOptions) types.TagMap {
	base := scan.Tags.Clone()
	if base == nil {
		base = types.NewTagMap()
	}
	tagmap.InjectInfo(base, scan.Info)
	tagmap.Map(base, o.id3Mapper)

	suppressArtwork := o.suppressArtwork
	if _, set := os.LookupEnv("AUDIO_SCAN_NO_ARTWORK"); set && !o.suppressArtwork {
		suppressArtwork = true
	}
	flac.ResolveArtwork(scan, base, suppressArtwork)

	return base
}

// cueSheetLines returns the cue-sheet grammar lines to feed the external
// cue parser, preferring the binary CUESHEET metadata block over a raw
// CUESHEET Vorbis comment, and the name of whichever source won ("block",
// "tag", or "" if neither is present).
func cueSheetLines(scan types.ScanResult, base types.TagMap) ([]string, string) {
	if len(scan.CueSheetBlockLines) > 0 {
		lines := make([]string, len(scan.CueSheetBlockLines))
		copy(lines, scan.CueSheetBlockLines)
		return lines, "block"
	}
	if base.Has("CUESHEET") {
		text := base.GetString("CUESHEET")
		return splitCueLines(text), "tag"
	}
	return nil, ""
}

func splitCueLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return lines
}

// markPlaylist sets the playlist-level fields the orchestrator's base map
// carries once C5 successfully split at least one track.
func markPlaylist(base types.TagMap, tracks map[int]types.TagMap) {
	base.SetString("CT", "fec")
	base.SetString("AUDIO", "false")

	if track1, ok := tracks[1]; ok && track1.Has("ALBUM") {
		base.SetString("TITLE", track1.GetString("ALBUM"))
	} else {
		base.SetString("TITLE", base.GetString("ALBUM"))
	}
}

// persistTracks stamps each track with its age/size/virtual markers,
// delegates anchor processing to the cue parser, and persists it through
// the catalog. It returns the track matching fileURL#anchor, if anchor
// was supplied and a match exists. fileURL must be the same
// canonicalFileURL(path) value the cue parser was given, or the
// comparison against each track's URI can never succeed.
func persistTracks(o *openOptions, path, fileURL string, info types.ContainerInfo, base types.TagMap, tracks map[int]types.TagMap, anchor string) types.TagMap {
	age := 0
	if stat, err := os.Stat(path); err == nil {
		age = int(stat.ModTime().Unix())
	}

	keys := make([]int, 0, len(tracks))
	for k := range tracks {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var anchorMatch types.TagMap
	wantURI := ""
	if anchor != "" {
		wantURI = fileURL + "#" + anchor
	}

	for _, k := range keys {
		track := tracks[k]
		track.SetInt("AGE", age)
		track.SetInt("FS", base.GetInt("SIZE"))
		track.SetString("VIRTUAL", "true")

		track = o.cueParser.ProcessAnchor(track)
		tracks[k] = track

		if err := o.catalog.UpdateOrCreate(context.Background(), types.Record{
			Path: track.GetString("URI"),
			Tags: track,
			Info: info,
		}); err != nil {
			o.logger.WithFields(logrus.Fields{"path": path, "stage": "catalog"}).
				WithError(err).Warn("failed to persist split track")
		}

		if wantURI != "" && track.GetString("URI") == wantURI {
			anchorMatch = track
		}
	}

	return anchorMatch
}

// canonicalFileURL renders path as a "file://" URL over its absolute form,
// falling back to the original path if it cannot be made absolute.
func canonicalFileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
