package splitter

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

const samplePeemXML = `
<mm:Artist rdf:about="artist:1">
  <dc:title>The Band</dc:title>
  <mm:sortName>Band, The</mm:sortName>
</mm:Artist>
<mm:Album rdf:about="album:1">
  <dc:title>Greatest Hits</dc:title>
  <dc:creator rdf:resource="artist:1"/>
  <mm:ReleaseDate><dc:date>2001-05-01</dc:date></mm:ReleaseDate>
  <mm:trackList><rdf:Seq>
    <rdf:li resource="track:1"/>
    <rdf:li resource="track:2"/>
  </rdf:Seq></mm:trackList>
</mm:Album>
`

func TestXmlStrategy_PopulatesExistingTracks(t *testing.T) {
	scan := types.ScanResult{
		Application: map[uint32][]byte{
			peemApplicationID: []byte(samplePeemXML),
		},
	}
	tracks := map[int]types.TagMap{
		1: types.NewTagMap(),
		2: types.NewTagMap(),
	}

	count, warnings := xmlStrategy{}.Try(scan, tracks)

	require.Equal(t, 2, count)
	require.Empty(t, warnings)
	require.Equal(t, "Greatest Hits", tracks[1].GetString("ALBUM"))
	require.Equal(t, "2001", tracks[1].GetString("YEAR"))
	require.Equal(t, "The Band", tracks[1].GetString("ARTIST"))
	require.Equal(t, "Band, The", tracks[1].GetString("ARTISTSORT"))
	require.Equal(t, 1, tracks[1].GetInt("TRACKNUM"))
	require.Equal(t, 2, tracks[2].GetInt("TRACKNUM"))
}

func TestXmlStrategy_SkipsAbsentTrackTableEntries(t *testing.T) {
	scan := types.ScanResult{
		Application: map[uint32][]byte{
			peemApplicationID: []byte(samplePeemXML),
		},
	}
	tracks := map[int]types.TagMap{
		1: types.NewTagMap(),
	}

	count, _ := xmlStrategy{}.Try(scan, tracks)

	require.Equal(t, 2, count)
	require.Len(t, tracks, 1)
	require.Equal(t, "Greatest Hits", tracks[1].GetString("ALBUM"))
}

func TestXmlStrategy_NoApplicationBlockReturnsZero(t *testing.T) {
	count, warnings := xmlStrategy{}.Try(types.ScanResult{}, map[int]types.TagMap{})
	require.Zero(t, count)
	require.Empty(t, warnings)
}
