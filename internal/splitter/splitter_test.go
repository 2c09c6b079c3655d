package splitter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

type stubCueParser struct {
	result map[int]types.TagMap
	err    error
}

func (s stubCueParser) Parse(lines []string, dir, pathOrEmpty string, embedded bool) (map[int]types.TagMap, error) {
	return s.result, s.err
}

func TestSplit_FirstMatchingStrategyWins(t *testing.T) {
	scan := types.ScanResult{Tags: types.NewTagMap()}
	scan.Tags.SetString("DTITLE", "Artist / Album")
	scan.Tags.SetString("TTITLE0", "First Track")
	scan.Tags.SetString("TTITLE1", "Second Track")

	tracks := map[int]types.TagMap{}
	count, warnings := Split(scan, tracks, stubCueParser{})

	require.Equal(t, 2, count)
	require.Empty(t, warnings)
	require.Equal(t, "First Track", tracks[0].GetString("TITLE"))
	require.Equal(t, "Second Track", tracks[1].GetString("TITLE"))
}

func TestSplit_FallbackFillsMissingFromTopLevelTags(t *testing.T) {
	scan := types.ScanResult{Tags: types.NewTagMap()}
	scan.Tags.SetString("ALBUM", "Fallback Album")

	tracks := map[int]types.TagMap{
		1: types.NewTagMap(),
	}
	tracks[1].SetString("TITLE", "Kept Title")

	count, warnings := Split(scan, tracks, stubCueParser{})

	require.Equal(t, 1, count)
	require.Empty(t, warnings)
	require.Equal(t, "Fallback Album", tracks[1].GetString("ALBUM"))
	require.Equal(t, "Kept Title", tracks[1].GetString("TITLE"))
}

func TestSplit_NoStrategyNoTagsReturnsZero(t *testing.T) {
	scan := types.ScanResult{Tags: types.NewTagMap()}
	tracks := map[int]types.TagMap{}

	count, warnings := Split(scan, tracks, stubCueParser{})

	require.Zero(t, count)
	require.Empty(t, warnings)
}
