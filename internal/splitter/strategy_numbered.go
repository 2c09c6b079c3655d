package splitter

import (
	"regexp"

	"github.com/wavepath/flacscan/internal/tagmap"
	"github.com/wavepath/flacscan/internal/types"
)

// numberedVCStrategy recovers per-track metadata from Vorbis comments
// whose key carries an explicit group suffix, e.g. "TITLE(1)", "TITLE[2]".
type numberedVCStrategy struct{}

func (numberedVCStrategy) Name() string { return "numbered-vc" }

var groupedKeyPattern = regexp.MustCompile(`^([A-Z0-9_]+)\s*[(\[{<](\d+)[)\]}>]$`)

func (numberedVCStrategy) Try(scan types.ScanResult, tracks map[int]types.TagMap) (int, []types.Warning) {
	titletags := 0
	for _, key := range scan.Tags.Keys() {
		m := groupedKeyPattern.FindStringSubmatch(key)
		if m != nil && m[1] == "TITLE" {
			titletags++
		}
	}
	if titletags == 0 {
		return 0, nil
	}

	cuetracks := len(tracks)
	if titletags != cuetracks {
		return 0, []types.Warning{warn("splitter",
			"numbered Vorbis comments: %d TITLE groups but %d cue tracks", titletags, cuetracks)}
	}

	defaults := types.NewTagMap()
	grouped := make(map[int]types.TagMap)

	for _, key := range scan.Tags.Keys() {
		v, _ := scan.Tags.Get(key)
		m := groupedKeyPattern.FindStringSubmatch(key)
		if m == nil {
			defaults.Set(key, v)
			continue
		}
		base, n := m[1], atoiOr(m[2])
		tm, ok := grouped[n]
		if !ok {
			tm = types.NewTagMap()
			grouped[n] = tm
		}
		tm.Set(base, v)
	}

	for n := 1; n <= titletags; n++ {
		track := getOrCreate(tracks, n)
		if group, ok := grouped[n]; ok {
			track.Overlay(group)
		}
		track.FillMissing(defaults)
		tagmap.Map(track, nil)
		if !track.Has("TRACKNUM") {
			track.SetInt("TRACKNUM", n)
		}
	}

	return titletags, nil
}
