package splitter

import (
	"regexp"
	"strings"

	"github.com/wavepath/flacscan/internal/tagmap"
	"github.com/wavepath/flacscan/internal/types"
)

// cddbStrategy recovers per-track metadata from the CDDB-style DTITLE /
// TTITLEn convention some early rippers wrote into Vorbis comments.
type cddbStrategy struct{}

func (cddbStrategy) Name() string { return "cddb" }

var ttitlePattern = regexp.MustCompile(`^TTITLE(\d+)$`)

func (cddbStrategy) Try(scan types.ScanResult, tracks map[int]types.TagMap) (int, []types.Warning) {
	if !scan.Tags.Has("DTITLE") {
		return 0, nil
	}

	defaults := scan.Tags.Clone()

	artist, album := splitDTitle(defaults.GetString("DTITLE"))
	defaults.Delete("DTITLE")
	if artist != "" {
		defaults.SetString("ARTIST", artist)
	}
	if album != "" {
		defaults.SetString("ALBUM", album)
	}

	defaults.Rename("DGENRE", "GENRE")
	defaults.Rename("DYEAR", "YEAR")

	var processed []int
	for _, key := range defaults.Keys() {
		m := ttitlePattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		n := atoiOr(m[1])
		value := defaults.GetString(key)
		defaults.Delete(key)

		track := getOrCreate(tracks, n)
		if before, after, ok := strings.Cut(value, " / "); ok {
			track.SetString("ARTIST", strings.TrimSpace(before))
			track.SetString("TITLE", strings.TrimSpace(after))
		} else {
			track.SetString("TITLE", value)
		}
		track.SetInt("TRACKNUM", n)
		processed = append(processed, n)
	}

	if len(processed) == 0 {
		return 0, nil
	}

	fillFromInfo(defaults, scan.Info)

	for _, n := range processed {
		track := tracks[n]
		track.FillMissing(defaults)
		tagmap.Map(track, nil)
	}

	return len(processed), nil
}

// splitDTitle splits "Artist / Album" on the first slash, trimming
// surrounding whitespace from both halves.
func splitDTitle(dtitle string) (artist, album string) {
	before, after, ok := strings.Cut(dtitle, "/")
	if !ok {
		return "", strings.TrimSpace(dtitle)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}
