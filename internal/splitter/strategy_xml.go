package splitter

import (
	"regexp"
	"strings"

	"github.com/wavepath/flacscan/internal/tagmap"
	"github.com/wavepath/flacscan/internal/types"
)

// peemApplicationID is the MusicBrainz "PEEM" application block id
// carrying an embedded XML/RDF album/artist/track catalog.
const peemApplicationID uint32 = 1885693293

// xmlStrategy recovers per-track metadata from the embedded XML/RDF
// catalog some MusicBrainz-aware encoders write into a PEEM application
// block. It intentionally uses textual pattern matching rather than a
// real XML parser, since the dialect seen in the wild does not reliably
// validate against a strict parser.
type xmlStrategy struct{}

func (xmlStrategy) Name() string { return "xml-rdf" }

var (
	albumListPattern  = regexp.MustCompile(`(?s)<mm:albumList>(.*?)</mm:albumList>`)
	albumBlockPattern = regexp.MustCompile(`(?s)<mm:Album\s+rdf:about="([^"]+)"[^>]*>(.*?)</mm:Album>`)
	singleAlbumTag    = regexp.MustCompile(`(?s)<mm:Album\s+rdf:about="([^"]+)"`)
	dcTitlePattern    = regexp.MustCompile(`(?s)<dc:title>(.*?)</dc:title>`)
	dcCreatorPattern  = regexp.MustCompile(`<dc:creator\s+rdf:resource="([^"]+)"`)
	releaseDatePat    = regexp.MustCompile(`(?s)<mm:ReleaseDate>.*?<dc:date>(.*?)</dc:date>`)
	trackListPattern  = regexp.MustCompile(`(?s)<mm:trackList>.*?<rdf:Seq>(.*?)</rdf:Seq>`)
	seqEntryPattern   = regexp.MustCompile(`<rdf:li[^>]*/?>`)
	artistBlockPat    = regexp.MustCompile(`(?s)<mm:Artist\s+rdf:about="([^"]+)">(.*?)</mm:Artist>`)
	sortNamePattern   = regexp.MustCompile(`(?s)<mm:sortName>(.*?)</mm:sortName>`)
	yearExtract       = regexp.MustCompile(`\d{4}`)
)

type xmlArtist struct {
	name string
	sort string
}

func (xmlStrategy) Try(scan types.ScanResult, tracks map[int]types.TagMap) (int, []types.Warning) {
	data, ok := scan.Application[peemApplicationID]
	if !ok {
		return 0, nil
	}
	text := string(data)

	artists := parseArtists(text)
	albumURIs := parseAlbumURIs(text)
	if len(albumURIs) == 0 {
		return 0, nil
	}

	cuesheetTrack := 0
	for _, uri := range albumURIs {
		body := albumBody(text, uri)
		if body == "" {
			continue
		}

		album := types.NewTagMap()
		if m := dcTitlePattern.FindStringSubmatch(body); m != nil {
			album.SetString("ALBUM", strings.TrimSpace(m[1]))
		}
		artistID := ""
		if m := dcCreatorPattern.FindStringSubmatch(body); m != nil {
			artistID = m[1]
		}
		if m := releaseDatePat.FindStringSubmatch(body); m != nil {
			if y := yearExtract.FindString(m[1]); y != "" {
				album.SetString("YEAR", y)
			}
		}

		trackURIs := trackList(body)
		for pos := range trackURIs {
			cuesheetTrack++
			track, exists := tracks[cuesheetTrack]
			if !exists {
				continue
			}

			track.SetInt("TRACKNUM", pos+1)
			track.FillMissing(album)
			if a, ok := artists[artistID]; ok {
				if a.name != "" {
					track.Set("ARTIST", types.String(a.name))
				}
				if a.sort != "" {
					track.Set("ARTISTSORT", types.String(a.sort))
				}
			}
			fillFromInfo(track, scan.Info)
			tagmap.Map(track, nil)
		}
	}

	return cuesheetTrack, nil
}

func parseAlbumURIs(text string) []string {
	if m := albumListPattern.FindStringSubmatch(text); m != nil {
		var uris []string
		for _, am := range albumBlockPattern.FindAllStringSubmatch(m[1], -1) {
			uris = append(uris, am[1])
		}
		if len(uris) > 0 {
			return uris
		}
	}
	if m := singleAlbumTag.FindStringSubmatch(text); m != nil {
		return []string{m[1]}
	}
	return nil
}

func albumBody(text, uri string) string {
	for _, m := range albumBlockPattern.FindAllStringSubmatch(text, -1) {
		if m[1] == uri {
			return m[2]
		}
	}
	return ""
}

func trackList(albumBody string) []string {
	m := trackListPattern.FindStringSubmatch(albumBody)
	if m == nil {
		return nil
	}
	return seqEntryPattern.FindAllString(m[1], -1)
}

func parseArtists(text string) map[string]xmlArtist {
	out := make(map[string]xmlArtist)
	for _, m := range artistBlockPat.FindAllStringSubmatch(text, -1) {
		about, body := m[1], m[2]
		a := xmlArtist{}
		if tm := dcTitlePattern.FindStringSubmatch(body); tm != nil {
			a.name = strings.TrimSpace(tm[1])
		}
		if sm := sortNamePattern.FindStringSubmatch(body); sm != nil {
			a.sort = strings.TrimSpace(sm[1])
		}
		out[about] = a
	}
	return out
}
