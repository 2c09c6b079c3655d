package types

import "fmt"

// Picture is one embedded image recovered from a PICTURE metadata block.
//
// Picture is the raw scan-time representation; the artwork resolver picks
// one Picture's data to report as the file's cover art. Artwork from a
// base64 COVERART tag or an Escient PIC1-prefixed APPLICATION block is
// resolved straight to bytes and never becomes a Picture.
type Picture struct {
	// Type mirrors the FLAC/ID3v2 APIC picture type byte.
	Type PictureType

	// MIME is the declared MIME type, e.g. "image/jpeg".
	MIME string

	// Description is the free-text description field, often empty.
	Description string

	// Data is the raw image bytes.
	Data []byte

	// Width and Height are pixel dimensions when known, 0 otherwise.
	Width, Height int
}

// String returns a human-readable summary, e.g. "Front cover (1200x1200 JPEG, 245KB)".
func (p Picture) String() string {
	dims := ""
	if p.Width > 0 && p.Height > 0 {
		dims = fmt.Sprintf("%dx%d ", p.Width, p.Height)
	}
	return fmt.Sprintf("%s (%s%s, %s)", p.Type, dims, mimeToFormat(p.MIME), formatSize(len(p.Data)))
}

// PictureType categorizes the purpose/content of a Picture.
//
// Values match the FLAC PICTURE block's picture type field, which in turn
// mirrors the ID3v2 APIC frame picture types.
// See: https://id3.org/id3v2.4.0-frames (APIC frame)
type PictureType int

const (
	PictureOther              PictureType = iota // Other
	PictureIcon                                  // File icon (32x32 PNG)
	PictureOtherIcon                             // Other file icon
	PictureFrontCover                            // Front cover
	PictureBackCover                             // Back cover
	PictureLeaflet                               // Leaflet page
	PictureMedia                                 // Media (CD/vinyl label)
	PictureLeadArtist                            // Lead artist/performer/soloist
	PictureArtist                                // Artist/performer
	PictureConductor                             // Conductor
	PictureBand                                  // Band/orchestra
	PictureComposer                              // Composer
	PictureLyricist                              // Lyricist/text writer
	PictureRecordingLocation                     // Recording location
	PictureDuringRecording                       // During recording
	PictureDuringPerformance                     // During performance
	PictureVideoCapture                          // Movie/video screen capture
	PictureBrightFish                            // A bright colored fish
	PictureIllustration                          // Illustration
	PictureBandLogotype                          // Band/artist logotype
	PicturePublisherLogotype                     // Publisher/studio logotype
)

var pictureTypeNames = [...]string{
	"Other", "File icon", "Other file icon", "Front cover", "Back cover",
	"Leaflet page", "Media", "Lead artist", "Artist", "Conductor", "Band",
	"Composer", "Lyricist", "Recording location", "During recording",
	"During performance", "Movie/video screen capture", "A bright colored fish",
	"Illustration", "Band logotype", "Publisher logotype",
}

func (t PictureType) String() string {
	if t < 0 || int(t) >= len(pictureTypeNames) {
		return "Other"
	}
	return pictureTypeNames[t]
}

// formatSize formats byte size in human-readable form.
func formatSize(bytes int) string {
	const (
		KB = 1024
		MB = 1024 * KB
	)

	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%dKB", bytes/KB)
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// mimeToFormat converts MIME type to short format name.
func mimeToFormat(mime string) string {
	switch mime {
	case "image/jpeg":
		return "JPEG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	case "image/bmp":
		return "BMP"
	default:
		return "Image"
	}
}
