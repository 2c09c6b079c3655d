package flac

import (
	"encoding/base64"
	"sort"

	"github.com/wavepath/flacscan/internal/types"
)

// escientApplicationID is the Escient Media Server APPLICATION block id
// used to smuggle artwork behind a "PIC1" 4-byte prefix.
const escientApplicationID = 1163084622

// escientPrefix marks Escient-encoded artwork payloads.
const escientPrefix = "PIC1"

// ResolveArtwork tries, in order, standard PICTURE blocks, a COVERART
// Vorbis comment, and an Escient APPLICATION block, and sets ARTWORK (and
// COVER_LENGTH) on tm from whichever source applies first.
//
// noArtworkBytes mirrors the AUDIO_SCAN_NO_ARTWORK toggle: when true, the
// resolver still determines the winning source's byte length but stores
// that length as ARTWORK's value (as an integer) rather than the image
// bytes, so COVER_LENGTH always reports the size that would have been
// emitted in retaining mode.
func ResolveArtwork(scan types.ScanResult, tm types.TagMap, noArtworkBytes bool) {
	if data, ok := fromPictures(scan.Pictures); ok {
		setArtwork(tm, data, noArtworkBytes)
		return
	}

	if v, ok := scan.Tags.Get("COVERART"); ok {
		decoded, err := base64.StdEncoding.DecodeString(v.AsString())
		if err != nil {
			return
		}
		setArtwork(tm, decoded, noArtworkBytes)
		return
	}

	if payload, ok := scan.Application[escientApplicationID]; ok {
		if len(payload) >= len(escientPrefix) && string(payload[:len(escientPrefix)]) == escientPrefix {
			setArtwork(tm, payload[len(escientPrefix):], noArtworkBytes)
		}
	}
}

// fromPictures selects a Picture from ALLPICTURES: sorted by type
// ascending, preferring the first PictureFrontCover entry, else the first
// entry overall.
func fromPictures(pictures []types.Picture) ([]byte, bool) {
	if len(pictures) == 0 {
		return nil, false
	}

	sorted := make([]types.Picture, len(pictures))
	copy(sorted, pictures)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Type < sorted[j].Type })

	for _, p := range sorted {
		if p.Type == types.PictureFrontCover {
			return p.Data, true
		}
	}
	return sorted[0].Data, true
}

func setArtwork(tm types.TagMap, data []byte, noArtworkBytes bool) {
	if noArtworkBytes {
		tm.SetInt("ARTWORK", len(data))
		tm.SetInt("COVER_LENGTH", len(data))
		return
	}
	tm.Set("ARTWORK", types.Bytes(data))
	tm.SetInt("COVER_LENGTH", len(data))
}
