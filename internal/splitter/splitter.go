// Package splitter implements the five pluggable per-track metadata
// recovery strategies tried, in strict priority order, against a FLAC
// file whose embedded cue sheet defines multiple logical tracks.
package splitter

import (
	"fmt"
	"strconv"

	"github.com/wavepath/flacscan/internal/tagmap"
	"github.com/wavepath/flacscan/internal/types"
)

// CueParser is the narrow interface Strategy D needs to re-derive
// per-track metadata from an embedded cue sheet's text.
type CueParser interface {
	Parse(lines []string, dir, pathOrEmpty string, embedded bool) (map[int]types.TagMap, error)
}

// Strategy is one of the five track-metadata recovery variants. Try
// attempts to fill tracks in place and reports how many entries it
// processed; a positive count wins and short-circuits the remaining
// strategies.
type Strategy interface {
	Name() string
	Try(scan types.ScanResult, tracks map[int]types.TagMap) (int, []types.Warning)
}

// Strategies returns the five strategies in their fixed priority order.
func Strategies(cueParser CueParser) []Strategy {
	return []Strategy{
		xmlStrategy{},
		numberedVCStrategy{},
		cddbStrategy{},
		cueInVCStrategy{parser: cueParser},
		stackedStrategy{},
	}
}

// Split tries each strategy in order until one returns a positive count,
// then applies the fill-missing-only fallback if none did.
func Split(scan types.ScanResult, tracks map[int]types.TagMap, cueParser CueParser) (int, []types.Warning) {
	var warnings []types.Warning

	for _, s := range Strategies(cueParser) {
		count, w := s.Try(scan, tracks)
		warnings = append(warnings, w...)
		if count > 0 {
			return count, warnings
		}
	}

	if len(scan.Tags) == 0 {
		return 0, warnings
	}
	for _, tm := range tracks {
		tm.FillMissing(scan.Tags)
	}
	return len(tracks), warnings
}

func getOrCreate(tracks map[int]types.TagMap, n int) types.TagMap {
	tm, ok := tracks[n]
	if !ok {
		tm = types.NewTagMap()
		tracks[n] = tm
	}
	return tm
}

func fillFromInfo(tm types.TagMap, info types.ContainerInfo) {
	tagmap.InjectInfo(tm, info)
}

func warn(stage, format string, args ...interface{}) types.Warning {
	return types.Warning{Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// atoiOr returns 0 on parse failure rather than propagating an error;
// every strategy's key-suffix parsing degrades this way rather than
// aborting the whole strategy over one malformed key.
func atoiOr(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
