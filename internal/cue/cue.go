// Package cue implements the default CueParser: a tokenizer for embedded
// cue-sheet text (both a CUESHEET Vorbis comment and a textified CUESHEET
// metadata block) in the style of internal/vorbis's line-oriented parsing.
package cue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wavepath/flacscan/internal/types"
)

// Parser is the default embedded cue-sheet text parser. The zero value is
// ready to use.
type Parser struct{}

// New returns a Parser.
func New() Parser { return Parser{} }

// Parse tokenizes lines into a 1-indexed map of per-track Tag Maps.
// Malformed or unrecognized lines are skipped silently, matching the
// "degrade to best-available partial result" policy — a cue sheet with a
// handful of bad lines still yields whatever tracks it could parse.
//
// dir and pathOrEmpty locate the track's URI; when embedded is true the
// URI is the container path with a "#<track>" fragment rather than a
// path relative to dir.
func (Parser) Parse(lines []string, dir, pathOrEmpty string, embedded bool) (map[int]types.TagMap, error) {
	tracks := make(map[int]types.TagMap)
	globals := types.NewTagMap()
	current := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToUpper(fields[0]) {
		case "TRACK":
			n, ok := trackNumber(fields)
			if !ok {
				continue
			}
			current = n
			tm := types.NewTagMap()
			tm.SetInt("TRACKNUM", n)
			tm.SetString("URI", trackURI(dir, pathOrEmpty, n, embedded))
			tracks[n] = tm

		case "TITLE":
			value := quotedOrRest(line)
			if current == 0 {
				globals.SetString("ALBUM", value)
				continue
			}
			tracks[current].SetString("TITLE", value)

		case "PERFORMER":
			value := quotedOrRest(line)
			if current == 0 {
				globals.SetString("ALBUMARTIST", value)
				globals.SetString("ARTIST", value)
				continue
			}
			tracks[current].SetString("ARTIST", value)

		case "REM":
			// End-of-sheet terminator and vendor comments carry no
			// structured metadata worth propagating.

		case "INDEX", "FILE", "CATALOG", "FLAGS":
			// Timing/media directives outside this module's scope.

		default:
			// Unrecognized directive; ignore rather than fail the parse.
		}
	}

	for _, tm := range tracks {
		tm.FillMissing(globals)
	}

	return tracks, nil
}

// ProcessAnchor normalizes the fragment portion of a track's URI (the
// part after '#'), trimming stray whitespace a hand-edited cue sheet
// might introduce.
func (Parser) ProcessAnchor(track types.TagMap) types.TagMap {
	uri := track.GetString("URI")
	idx := strings.LastIndex(uri, "#")
	if idx == -1 {
		return track
	}
	fragment := strings.TrimSpace(uri[idx+1:])
	track.SetString("URI", uri[:idx]+"#"+fragment)
	return track
}

func trackNumber(fields []string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func trackURI(dir, pathOrEmpty string, n int, embedded bool) string {
	if embedded {
		return fmt.Sprintf("%s#%d", pathOrEmpty, n)
	}
	if dir == "" {
		return pathOrEmpty
	}
	return fmt.Sprintf("%s/%s#%d", dir, pathOrEmpty, n)
}

// quotedOrRest extracts the double-quoted argument of a directive line,
// falling back to everything after the first field when unquoted.
func quotedOrRest(line string) string {
	first := strings.IndexByte(line, '"')
	if first != -1 {
		last := strings.LastIndexByte(line, '"')
		if last > first {
			return line[first+1 : last]
		}
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
