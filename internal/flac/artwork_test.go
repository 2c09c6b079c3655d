package flac

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

func TestResolveArtwork_PicturePriority(t *testing.T) {
	scan := types.ScanResult{
		Pictures: []types.Picture{
			{Type: types.PictureBackCover, Data: []byte("back")},
			{Type: types.PictureFrontCover, Data: []byte("front")},
		},
	}
	tm := types.NewTagMap()

	ResolveArtwork(scan, tm, false)

	require.Equal(t, []byte("front"), tm.GetBytes("ARTWORK"))
	require.Equal(t, len("front"), tm.GetInt("COVER_LENGTH"))
}

func TestResolveArtwork_FirstPictureWhenNoFrontCover(t *testing.T) {
	scan := types.ScanResult{
		Pictures: []types.Picture{
			{Type: types.PictureOther, Data: []byte("other")},
			{Type: types.PictureBackCover, Data: []byte("back")},
		},
	}
	tm := types.NewTagMap()

	ResolveArtwork(scan, tm, false)

	require.Equal(t, []byte("other"), tm.GetBytes("ARTWORK"))
}

func TestResolveArtwork_CoverArtTag(t *testing.T) {
	tm := types.NewTagMap()
	scan := types.ScanResult{Tags: types.NewTagMap()}
	scan.Tags.SetString("COVERART", base64.StdEncoding.EncodeToString([]byte("hello-art")))

	ResolveArtwork(scan, tm, false)

	require.Equal(t, []byte("hello-art"), tm.GetBytes("ARTWORK"))
	require.Equal(t, len("hello-art"), tm.GetInt("COVER_LENGTH"))
}

func TestResolveArtwork_CoverArtDecodeFailureIsSilent(t *testing.T) {
	tm := types.NewTagMap()
	scan := types.ScanResult{Tags: types.NewTagMap()}
	scan.Tags.SetString("COVERART", "not-valid-base64!!")

	ResolveArtwork(scan, tm, false)

	require.False(t, tm.Has("ARTWORK"))
}

func TestResolveArtwork_EscientAppBlock(t *testing.T) {
	tm := types.NewTagMap()
	scan := types.ScanResult{
		Tags:        types.NewTagMap(),
		Application: map[uint32][]byte{escientApplicationID: []byte("PIC1imagebytes")},
	}

	ResolveArtwork(scan, tm, false)

	require.Equal(t, []byte("imagebytes"), tm.GetBytes("ARTWORK"))
}

func TestResolveArtwork_NoArtworkModeStoresLength(t *testing.T) {
	tm := types.NewTagMap()
	scan := types.ScanResult{
		Pictures: []types.Picture{{Type: types.PictureFrontCover, Data: []byte("0123456789")}},
	}

	ResolveArtwork(scan, tm, true)

	require.Equal(t, 10, tm.GetInt("ARTWORK"))
	require.Equal(t, 10, tm.GetInt("COVER_LENGTH"))
}

func TestResolveArtwork_NoneAvailable(t *testing.T) {
	tm := types.NewTagMap()
	ResolveArtwork(types.ScanResult{Tags: types.NewTagMap()}, tm, false)
	require.False(t, tm.Has("ARTWORK"))
	require.False(t, tm.Has("COVER_LENGTH"))
}
