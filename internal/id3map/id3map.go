// Package id3map implements the default ID3Mapper: it reads any ID3v2
// frames present in a file (some encoders prepend a full ID3v2 header
// before the fLaC magic) and folds them onto a Tag Map.
package id3map

import (
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/wavepath/flacscan/internal/types"
)

// Adapter is bound to a single file path at construction time, since
// reading ID3 frames requires reopening the underlying file.
type Adapter struct {
	Path string
}

// New returns an Adapter bound to path.
func New(path string) *Adapter {
	return &Adapter{Path: path}
}

// DoTagMapping reads ID3v2 frames from the bound file and applies them to
// tags. When noOverwrite is true, an ID3-origin value never replaces an
// existing value — the coexistence rule requires FLAC-origin tags to
// always win. Any read or decode failure leaves tags untouched.
func (a *Adapter) DoTagMapping(tags types.TagMap, noOverwrite bool) types.TagMap {
	f, err := os.Open(a.Path)
	if err != nil {
		return tags
	}
	defer f.Close()

	m, err := readID3(f)
	if err != nil {
		return tags
	}

	set := func(key, value string) {
		if value == "" {
			return
		}
		if noOverwrite && tags.Has(key) {
			return
		}
		tags.SetString(key, value)
	}
	setInt := func(key string, value int) {
		if value == 0 {
			return
		}
		if noOverwrite && tags.Has(key) {
			return
		}
		tags.SetInt(key, value)
	}

	set("TITLE", m.Title())
	set("ARTIST", m.Artist())
	set("ALBUM", m.Album())
	set("ALBUMARTIST", m.AlbumArtist())
	set("COMPOSER", m.Composer())
	setInt("YEAR", m.Year())

	if track, _ := m.Track(); track != 0 {
		setInt("TRACKNUM", track)
	}
	if disc, _ := m.Disc(); disc != 0 {
		setInt("DISC", disc)
	}

	// Genre and comment frames aren't part of the Metadata interface and
	// vary in raw key name across formats (TCON, COMM, ©gen, ...); pull
	// them from Raw() on a best-effort basis instead.
	for _, key := range []string{"genre", "TCON", "\xa9gen"} {
		if v, ok := m.Raw()[key].(string); ok && v != "" {
			set("GENRE", v)
			break
		}
	}
	for _, key := range []string{"comment", "COMM", "\xa9cmt"} {
		if v, ok := m.Raw()[key].(string); ok && v != "" {
			set("COMMENT", v)
			break
		}
	}

	return tags
}

func readID3(r io.ReadSeeker) (tag.Metadata, error) {
	return tag.ReadFrom(r)
}
