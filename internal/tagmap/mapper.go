// Package tagmap renames vendor Vorbis-comment keys onto the canonical tag
// vocabulary and projects container stream info into it.
package tagmap

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wavepath/flacscan/internal/types"
)

// ID3Mapper is the narrow interface the Tag Mapper calls into when a
// container reports a coexisting ID3 tag version. Kept local (rather than
// importing the root package) to avoid an import cycle; the root package's
// default adapter and any caller-supplied adapter both satisfy it
// structurally.
type ID3Mapper interface {
	DoTagMapping(tm types.TagMap, noOverwrite bool) types.TagMap
}

// rename is one vendor-key -> canonical-key move.
type rename struct {
	from, to string
}

// renames is the exact vendor-to-canonical table. Order matters only in
// that later renames may consume a key an earlier rename produced (none do
// here), so a single left-to-right pass suffices.
var renames = []rename{
	{"TRACKNUMBER", "TRACKNUM"},
	{"DISCNUMBER", "DISC"},
	{"DISCTOTAL", "DISCC"},
	{"TOTALDISCS", "DISCC"},
	{"URL", "URLTAG"},
	{"DESCRIPTION", "COMMENT"},
	{"ORIGINALYEAR", "YEAR"},
	{"UNSYNCEDLYRICS", "LYRICS"},
	{"REPLAY GAIN", "REPLAYGAIN_TRACK_GAIN"},
	{"PEAK LEVEL", "REPLAYGAIN_TRACK_PEAK"},
	{"DISC #", "DISC"},
	{"ALBUM ARTIST", "ALBUMARTIST"},
	{"MUSICBRAINZ_SORTNAME", "ARTISTSORT"},
	{"MUSICBRAINZ_ALBUMARTIST", "ALBUMARTIST"},
	{"MUSICBRAINZ_ALBUMARTISTID", "MUSICBRAINZ_ALBUMARTIST_ID"},
	{"MUSICBRAINZ_ALBUMID", "MUSICBRAINZ_ALBUM_ID"},
	{"MUSICBRAINZ_ALBUMSTATUS", "MUSICBRAINZ_ALBUM_STATUS"},
	{"MUSICBRAINZ_ALBUMTYPE", "RELEASETYPE"},
	{"MUSICBRAINZ_ALBUM_TYPE", "RELEASETYPE"},
	{"MUSICBRAINZ_ARTISTID", "MUSICBRAINZ_ARTIST_ID"},
	{"MUSICBRAINZ_TRACKID", "MUSICBRAINZ_ID"},
	{"MUSICBRAINZ_TRMID", "MUSICBRAINZ_TRM_ID"},
}

var yearPattern = regexp.MustCompile(`\d{4}`)

// Map applies the vendor-to-canonical rename table, date/BPM coercion, and
// (when applicable) a non-overwriting ID3 mapping pass, to tm in place.
//
// id3 may be nil; it is only invoked when tm already carries TAGVERSION
// (set by InjectInfo when the container reported an id3_version).
func Map(tm types.TagMap, id3 ID3Mapper) {
	if id3 != nil && tm.Has("TAGVERSION") {
		id3.DoTagMapping(tm, true)
	}

	for _, r := range renames {
		tm.Rename(r.from, r.to)
	}

	coerceDate(tm)
	coerceBPM(tm)
}

// coerceDate implements the DATE -> YEAR derivation: when DATE is present
// and YEAR is not, collapse a DATE list to its lexicographically smallest
// element, then pull the first 4-digit run into YEAR.
func coerceDate(tm types.TagMap) {
	if tm.Has("YEAR") {
		return
	}
	v, ok := tm.Get("DATE")
	if !ok {
		return
	}

	date := v.AsString()
	if v.Kind() == types.KindList {
		list := v.AsList()
		if len(list) == 0 {
			return
		}
		date = list[0]
		for _, s := range list[1:] {
			if s < date {
				date = s
			}
		}
		tm.SetString("DATE", date)
	}

	if year := yearPattern.FindString(date); year != "" {
		tm.SetString("YEAR", year)
	}
}

// coerceBPM truncates BPM to an integer when present.
func coerceBPM(tm types.TagMap) {
	v, ok := tm.Get("BPM")
	if !ok {
		return
	}
	if v.Kind() == types.KindInt {
		return
	}
	s := v.AsString()
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		tm.SetInt("BPM", int(f))
		return
	}
	tm.SetInt("BPM", v.AsInt())
}
