package splitter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

func TestCddbStrategy_SplitsArtistAlbumAndTracks(t *testing.T) {
	scan := types.ScanResult{Tags: types.NewTagMap()}
	scan.Tags.SetString("DTITLE", "Some Artist / Some Album")
	scan.Tags.SetString("DGENRE", "Rock")
	scan.Tags.SetString("TTITLE0", "Opener")
	scan.Tags.SetString("TTITLE1", "Guest Artist / Duet")

	tracks := map[int]types.TagMap{}
	count, warnings := cddbStrategy{}.Try(scan, tracks)

	require.Equal(t, 2, count)
	require.Empty(t, warnings)
	require.Equal(t, "Some Artist", tracks[0].GetString("ARTIST"))
	require.Equal(t, "Some Album", tracks[0].GetString("ALBUM"))
	require.Equal(t, "Opener", tracks[0].GetString("TITLE"))
	require.Equal(t, "Rock", tracks[0].GetString("GENRE"))
	require.Equal(t, "Guest Artist", tracks[1].GetString("ARTIST"))
	require.Equal(t, "Duet", tracks[1].GetString("TITLE"))
}

func TestCddbStrategy_NoDTitleReturnsZero(t *testing.T) {
	scan := types.ScanResult{Tags: types.NewTagMap()}
	count, warnings := cddbStrategy{}.Try(scan, map[int]types.TagMap{})
	require.Zero(t, count)
	require.Empty(t, warnings)
}

func TestSplitDTitle(t *testing.T) {
	artist, album := splitDTitle("A / B")
	require.Equal(t, "A", artist)
	require.Equal(t, "B", album)

	artist, album = splitDTitle("Just Album")
	require.Equal(t, "", artist)
	require.Equal(t, "Just Album", album)
}
