package flac

import (
	"fmt"
	"strings"

	"github.com/wavepath/flacscan/internal/binary"
)

// CueSheet represents a FLAC CUESHEET metadata block.
type CueSheet struct {
	MediaCatalogNumber string
	LeadIn             uint64
	IsCD               bool
	Tracks             []CueTrack
}

// CueTrack represents a track in a cue sheet.
type CueTrack struct {
	Offset      uint64 // samples from start of audio
	Number      byte   // track number (1-99, 170=lead-out)
	ISRC        string
	IsAudio     bool
	PreEmphasis bool
	Indices     []CueIndex
}

// CueIndex represents an index point within a track.
type CueIndex struct {
	Offset uint64 // samples from start of track
	Number byte   // index number
}

// leadOutTrackNumber is the reserved cue-sheet track number marking the
// end of the last audio track; it carries no audio of its own.
const leadOutTrackNumber = 170

// parseCueSheetBlock decodes a FLAC CUESHEET metadata block.
func parseCueSheetBlock(sr *binary.SafeReader, offset int64, length uint32) (*CueSheet, error) {
	if length < 396 {
		return nil, fmt.Errorf("CUESHEET block too short: %d bytes (need at least 396)", length)
	}

	startOffset := offset

	mcnBytes := make([]byte, 128)
	if err := sr.ReadAt(mcnBytes, offset, "media catalog number"); err != nil {
		return nil, fmt.Errorf("read MCN: %w", err)
	}
	mcn := strings.TrimRight(string(mcnBytes), "\x00")
	offset += 128

	leadIn, err := binary.Read[uint64](sr, offset, "lead-in samples")
	if err != nil {
		return nil, fmt.Errorf("read lead-in: %w", err)
	}
	offset += 8

	flags, err := binary.Read[uint8](sr, offset, "cuesheet flags")
	if err != nil {
		return nil, fmt.Errorf("read flags: %w", err)
	}
	isCD := (flags & 0x80) != 0
	offset++

	offset += 258 // reserved

	trackCount, err := binary.Read[uint8](sr, offset, "track count")
	if err != nil {
		return nil, fmt.Errorf("read track count: %w", err)
	}
	offset++

	if bytesRead := offset - startOffset; int64(length) < bytesRead {
		return nil, fmt.Errorf("CUESHEET block truncated")
	}

	tracks := make([]CueTrack, 0, trackCount)
	for i := byte(0); i < trackCount; i++ {
		track, nextOffset, err := parseCueTrack(sr, offset, startOffset+int64(length))
		if err != nil {
			return nil, fmt.Errorf("parse track %d: %w", i, err)
		}
		tracks = append(tracks, *track)
		offset = nextOffset
	}

	return &CueSheet{
		MediaCatalogNumber: mcn,
		LeadIn:             leadIn,
		IsCD:               isCD,
		Tracks:             tracks,
	}, nil
}

func parseCueTrack(sr *binary.SafeReader, offset, maxOffset int64) (*CueTrack, int64, error) {
	if offset+36 > maxOffset {
		return nil, 0, fmt.Errorf("track data exceeds block bounds")
	}

	trackOffset, err := binary.Read[uint64](sr, offset, "track offset")
	if err != nil {
		return nil, 0, fmt.Errorf("read track offset: %w", err)
	}
	offset += 8

	trackNumber, err := binary.Read[uint8](sr, offset, "track number")
	if err != nil {
		return nil, 0, fmt.Errorf("read track number: %w", err)
	}
	offset++

	isrcBytes := make([]byte, 12)
	if err := sr.ReadAt(isrcBytes, offset, "ISRC"); err != nil {
		return nil, 0, fmt.Errorf("read ISRC: %w", err)
	}
	isrc := strings.TrimRight(string(isrcBytes), "\x00")
	offset += 12

	flags, err := binary.Read[uint8](sr, offset, "track flags")
	if err != nil {
		return nil, 0, fmt.Errorf("read track flags: %w", err)
	}
	isAudio := (flags & 0x80) == 0
	preEmphasis := (flags & 0x40) != 0
	offset++

	offset += 13 // reserved

	indexCount, err := binary.Read[uint8](sr, offset, "index count")
	if err != nil {
		return nil, 0, fmt.Errorf("read index count: %w", err)
	}
	offset++

	indices := make([]CueIndex, 0, indexCount)
	for j := byte(0); j < indexCount; j++ {
		if offset+12 > maxOffset {
			return nil, 0, fmt.Errorf("index data exceeds block bounds")
		}
		index, nextOffset, err := parseCueIndex(sr, offset)
		if err != nil {
			return nil, 0, fmt.Errorf("parse index %d: %w", j, err)
		}
		indices = append(indices, *index)
		offset = nextOffset
	}

	return &CueTrack{
		Offset:      trackOffset,
		Number:      trackNumber,
		ISRC:        isrc,
		IsAudio:     isAudio,
		PreEmphasis: preEmphasis,
		Indices:     indices,
	}, offset, nil
}

func parseCueIndex(sr *binary.SafeReader, offset int64) (*CueIndex, int64, error) {
	indexOffset, err := binary.Read[uint64](sr, offset, "index offset")
	if err != nil {
		return nil, 0, fmt.Errorf("read index offset: %w", err)
	}
	offset += 8

	indexNumber, err := binary.Read[uint8](sr, offset, "index number")
	if err != nil {
		return nil, 0, fmt.Errorf("read index number: %w", err)
	}
	offset++
	offset += 3 // reserved

	return &CueIndex{Offset: indexOffset, Number: indexNumber}, offset, nil
}

// cueSheetBlockLines renders a binary CUESHEET metadata block as standard
// cue-sheet grammar text lines, so the same downstream cue parser handles
// both a binary CUESHEET block and a textual CUESHEET Vorbis comment.
func cueSheetBlockLines(cs *CueSheet, sampleRate int) []string {
	if sampleRate <= 0 || len(cs.Tracks) == 0 {
		return nil
	}

	var lines []string
	for _, track := range cs.Tracks {
		if !track.IsAudio || track.Number == leadOutTrackNumber {
			continue
		}
		lines = append(lines, fmt.Sprintf("    TRACK %02d AUDIO", track.Number))
		if track.ISRC != "" {
			lines = append(lines, fmt.Sprintf("        ISRC %s", track.ISRC))
		}
		for _, idx := range track.Indices {
			lines = append(lines, fmt.Sprintf("        INDEX %02d %s", idx.Number, framesTimestamp(idx.Offset, sampleRate)))
		}
	}
	return lines
}

// framesTimestamp renders a sample offset as a cue-sheet MM:SS:FF timestamp
// (75 frames per second, the Red Book CD-DA convention cue sheets use).
func framesTimestamp(samples uint64, sampleRate int) string {
	totalSeconds := float64(samples) / float64(sampleRate)
	minutes := int(totalSeconds) / 60
	seconds := int(totalSeconds) % 60
	frames := int((totalSeconds - float64(int(totalSeconds))) * 75)
	return fmt.Sprintf("%02d:%02d:%02d", minutes, seconds, frames)
}
