package types

// ContainerInfo carries the technical stream properties a container scan
// derives from STREAMINFO plus the file's own size on disk.
type ContainerInfo struct {
	// SizeBytes is the file size in bytes.
	SizeBytes int64

	// DurationSeconds is the total stream duration.
	DurationSeconds float64

	// SampleRate is the audio sample rate in Hz.
	SampleRate int

	// BitsPerSample is the sample size in bits.
	BitsPerSample int

	// Channels is the channel count.
	Channels int

	// ID3Version is a short descriptive suffix appended to TAGVERSION, e.g.
	// "ID3v2.3" when a leading ID3 tag precedes the FLAC stream, or ""
	// when none is present.
	ID3Version string
}

// ScanResult is everything a ContainerScanner recovers from one FLAC file
// in a single pass: the plain Vorbis comment tags, the technical info
// above, any embedded pictures, raw APPLICATION block payloads keyed by
// their 4-byte application ID, and any embedded cue sheet rendered as
// standard cue-sheet grammar text lines.
//
// ScanResult intentionally keeps Pictures, Application and
// CueSheetBlockLines out of the Tags map: none of the three fit the Tag
// Map's flat String/Int/List/Bytes value union without either truncating
// structure (pictures have type/MIME/description/data/dimensions) or
// forcing a second encoding step the scanner shouldn't own.
type ScanResult struct {
	Info               ContainerInfo
	Tags               TagMap
	Pictures           []Picture
	Application        map[uint32][]byte
	CueSheetBlockLines []string
	Warnings           []Warning
}

// Record is the per-track summary a Catalog persists after a multi-track
// file has been split: Path is the track's URI, Tags its tag map, and
// Info the container's technical info, needed for library browsing and
// duplicate detection.
type Record struct {
	Path string
	Tags TagMap
	Info ContainerInfo
}
