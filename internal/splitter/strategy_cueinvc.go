package splitter

import (
	"strconv"
	"strings"

	"github.com/wavepath/flacscan/internal/tagmap"
	"github.com/wavepath/flacscan/internal/types"
)

// cueInVCStrategy recovers per-track metadata by re-parsing a cue sheet
// that was embedded as the text of a plain "CUESHEET" Vorbis comment,
// rather than as its own METADATA_BLOCK_CUESHEET. This is a second,
// independent source of the same grammar the top-level container scan
// may already have parsed for the Track Table.
type cueInVCStrategy struct {
	parser CueParser
}

func (cueInVCStrategy) Name() string { return "cue-in-vc" }

func (s cueInVCStrategy) Try(scan types.ScanResult, tracks map[int]types.TagMap) (int, []types.Warning) {
	if !scan.Tags.Has("CUESHEET") || s.parser == nil {
		return 0, nil
	}

	text := scan.Tags.GetString("CUESHEET")
	secs := strconv.FormatFloat(scan.Info.DurationSeconds, 'f', -1, 64)
	text += "\n    REM END " + secs

	lines := strings.Split(text, "\n")
	parsed, err := s.parser.Parse(lines, "", "", true)
	if err != nil || len(parsed) == 0 {
		return 0, nil
	}

	var warnings []types.Warning
	processed := 0
	for n, track := range tracks {
		meta, ok := parsed[n]
		if !ok {
			warnings = append(warnings, warn("splitter",
				"cue-in-comment: no parsed metadata for track %d", n))
			continue
		}

		merged := types.NewTagMap()
		fillFromInfo(merged, scan.Info)
		merged.Overlay(meta)
		merged.Overlay(track)

		for k, v := range merged {
			track.Set(k, v)
		}

		leftover := scan.Tags.Clone()
		leftover.Delete("CUESHEET")
		track.FillMissing(leftover)

		tagmap.Map(track, nil)
		processed++
	}

	return processed, warnings
}
