// Package flac implements the default ContainerScanner adapter: a
// bounds-checked walker over FLAC metadata blocks that surfaces
// STREAMINFO, VORBIS_COMMENT, PICTURE, APPLICATION and CUESHEET blocks as
// a types.ScanResult.
package flac

import (
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/pkg/errors"
	"github.com/wavepath/flacscan/internal/binary"
	"github.com/wavepath/flacscan/internal/types"
	"github.com/wavepath/flacscan/internal/vorbis"
)

// Metadata block types.
const (
	blockTypeStreamInfo    = 0
	blockTypePadding       = 1
	blockTypeApplication   = 2
	blockTypeSeekTable     = 3
	blockTypeVorbisComment = 4
	blockTypeCueSheet      = 5
	blockTypePicture       = 6
)

// Scanner is the default ContainerScanner implementation for native FLAC
// streams. The zero value is ready to use.
type Scanner struct{}

// Scan opens path and walks its metadata blocks into a ScanResult.
func (s Scanner) Scan(path string) (types.ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.ScanResult{}, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return types.ScanResult{}, errors.Wrapf(err, "stat %s", path)
	}

	result, err := s.ScanReader(f, info.Size(), path)
	if err != nil {
		return result, err
	}

	// Prefer mewkiz/flac's validating decode of STREAMINFO for a plain,
	// seekable file; it catches inconsistencies (e.g. a block-size range
	// that contradicts the frame headers) the hand-rolled walk above
	// doesn't check. Any failure here just means the hand-rolled result
	// stands.
	if mi, ok := tryMewkizStreamInfo(path); ok {
		result.Info.SampleRate = mi.SampleRate
		result.Info.Channels = mi.Channels
		result.Info.BitsPerSample = mi.BitsPerSample
		result.Info.DurationSeconds = mi.DurationSeconds
	}

	return result, nil
}

// ScanReader walks the metadata blocks of an already-open FLAC stream.
//
// Some encoders prepend an ID3v2 header before the fLaC magic (an
// in-the-wild convention, not part of the FLAC format proper); when
// detected, magicOffset skips past it and dhowden/tag supplies the
// version string for ContainerInfo.ID3Version.
func (s Scanner) ScanReader(r io.ReaderAt, size int64, path string) (types.ScanResult, error) {
	sr := binary.NewSafeReader(r, size, path)

	magicOffset, id3Version := detectID3Header(r, sr, size)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, magicOffset, "FLAC magic bytes"); err != nil {
		return types.ScanResult{}, errors.Wrap(err, "read FLAC magic")
	}
	if string(magic) != "fLaC" {
		return types.ScanResult{}, &types.CorruptedFileError{Path: path, Offset: magicOffset, Reason: "invalid FLAC magic bytes"}
	}

	result := types.ScanResult{
		Info:        types.ContainerInfo{SizeBytes: size, ID3Version: id3Version},
		Tags:        types.NewTagMap(),
		Application: make(map[uint32][]byte),
	}

	var sampleRate int
	var cueBlock *CueSheet

	offset := magicOffset + 4
	for offset < size {
		header, err := binary.Read[uint32](sr, offset, "metadata block header")
		if err != nil {
			result.Warnings = append(result.Warnings, types.Warning{
				Stage:   "container",
				Message: fmt.Sprintf("failed to read metadata block header at offset %d: %v", offset, err),
				Offset:  offset,
			})
			break
		}

		isLast := (header >> 31) == 1
		blockType := uint8((header >> 24) & 0x7F)
		blockLength := int64(header & 0x00FFFFFF)
		offset += 4

		switch blockType {
		case blockTypeStreamInfo:
			if err := parseStreamInfo(sr, offset, blockLength, &result.Info); err != nil {
				result.Warnings = append(result.Warnings, types.Warning{
					Stage: "container", Message: "failed to parse STREAMINFO: " + err.Error(), Offset: offset,
				})
			} else {
				sampleRate = result.Info.SampleRate
			}

		case blockTypeVorbisComment:
			if err := parseVorbisComment(sr, offset, blockLength, result.Tags); err != nil {
				result.Warnings = append(result.Warnings, types.Warning{
					Stage: "container", Message: "failed to parse Vorbis comments: " + err.Error(), Offset: offset,
				})
			}

		case blockTypePicture:
			pic, err := parsePicture(sr, offset)
			if err != nil {
				result.Warnings = append(result.Warnings, types.Warning{
					Stage: "container", Message: "failed to parse PICTURE: " + err.Error(), Offset: offset,
				})
			} else {
				result.Pictures = append(result.Pictures, pic)
			}

		case blockTypeApplication:
			id, data, err := parseApplication(sr, offset, blockLength)
			if err != nil {
				result.Warnings = append(result.Warnings, types.Warning{
					Stage: "container", Message: "failed to parse APPLICATION: " + err.Error(), Offset: offset,
				})
			} else {
				result.Application[id] = data
			}

		case blockTypeCueSheet:
			cs, err := parseCueSheetBlock(sr, offset, uint32(blockLength))
			if err != nil {
				result.Warnings = append(result.Warnings, types.Warning{
					Stage: "container", Message: "failed to parse CUESHEET: " + err.Error(), Offset: offset,
				})
			} else {
				cueBlock = cs
			}

		case blockTypePadding, blockTypeSeekTable:
			// nothing to surface

		default:
			// unknown block type, skip
		}

		offset += blockLength
		if isLast {
			break
		}
	}

	if cueBlock != nil {
		result.CueSheetBlockLines = cueSheetBlockLines(cueBlock, sampleRate)
	}

	return result, nil
}

// detectID3Header checks for a leading "ID3" tag and, if present, returns
// the byte offset where the fLaC magic should actually begin along with
// the ID3 version string reported by dhowden/tag. The 10-byte ID3v2
// header is "ID3" + 2 version bytes + 1 flags byte + a 4-byte sync-safe
// (7 bits per byte) size of the tag body that follows.
func detectID3Header(r io.ReaderAt, sr *binary.SafeReader, size int64) (int64, string) {
	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3 header probe"); err != nil {
		return 0, ""
	}
	if string(header[0:3]) != "ID3" {
		return 0, ""
	}

	bodySize := int64(header[6]&0x7f)<<21 | int64(header[7]&0x7f)<<14 | int64(header[8]&0x7f)<<7 | int64(header[9]&0x7f)
	magicOffset := 10 + bodySize

	version := ""
	if section := io.NewSectionReader(r, 0, size); section != nil {
		if m, err := tag.ReadFrom(section); err == nil {
			version = string(m.Format())
		}
	}

	return magicOffset, version
}

// FindFrame estimates the byte offset ms milliseconds into the stream as
// that fraction of the stream duration applied to the file size, clamped
// to [0, size]. It does not search for or validate a frame header, so the
// returned offset need not fall on a frame boundary.
func (s Scanner) FindFrame(path string, ms int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", path)
	}

	scan, err := s.ScanReader(f, info.Size(), path)
	if err != nil {
		return 0, err
	}
	if scan.Info.SampleRate == 0 || scan.Info.DurationSeconds <= 0 {
		return 0, fmt.Errorf("cannot locate frame: unknown stream duration")
	}

	fraction := (float64(ms) / 1000) / scan.Info.DurationSeconds
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return int64(fraction * float64(info.Size())), nil
}

func parseStreamInfo(sr *binary.SafeReader, offset, blockLength int64, info *types.ContainerInfo) error {
	if blockLength != 34 {
		return fmt.Errorf("invalid STREAMINFO size: %d (expected 34)", blockLength)
	}

	data := make([]byte, 34)
	if err := sr.ReadAt(data, offset, "STREAMINFO block"); err != nil {
		return err
	}

	packed := uint64(data[10])<<56 | uint64(data[11])<<48 | uint64(data[12])<<40 | uint64(data[13])<<32 |
		uint64(data[14])<<24 | uint64(data[15])<<16 | uint64(data[16])<<8 | uint64(data[17])

	sampleRate := (packed >> 44) & 0xFFFFF
	channels := ((packed >> 41) & 0x7) + 1
	bitsPerSample := ((packed >> 36) & 0x1F) + 1
	totalSamples := packed & 0xFFFFFFFFF

	info.SampleRate = int(sampleRate)
	info.Channels = int(channels)
	info.BitsPerSample = int(bitsPerSample)
	if sampleRate > 0 {
		info.DurationSeconds = float64(totalSamples) / float64(sampleRate)
	}

	return nil
}

func parseVorbisComment(sr *binary.SafeReader, offset, blockLength int64, tm types.TagMap) error {
	currentOffset := offset

	vendorLength, err := binary.ReadLE[uint32](sr, currentOffset, "vendor string length")
	if err != nil {
		return err
	}
	currentOffset += 4 + int64(vendorLength)

	numComments, err := binary.ReadLE[uint32](sr, currentOffset, "number of comments")
	if err != nil {
		return err
	}
	currentOffset += 4

	for i := uint32(0); i < numComments; i++ {
		commentLength, err := binary.ReadLE[uint32](sr, currentOffset, "comment length")
		if err != nil {
			return fmt.Errorf("read comment %d length: %w", i, err)
		}
		currentOffset += 4

		commentData := make([]byte, commentLength)
		if err := sr.ReadAt(commentData, currentOffset, fmt.Sprintf("comment %d", i)); err != nil {
			return fmt.Errorf("read comment %d: %w", i, err)
		}
		currentOffset += int64(commentLength)

		if err := vorbis.ParseComment(string(commentData), tm); err != nil {
			continue
		}
	}

	return nil
}

func parsePicture(sr *binary.SafeReader, offset int64) (types.Picture, error) {
	currentOffset := offset

	pictureType, err := binary.Read[uint32](sr, currentOffset, "picture type")
	if err != nil {
		return types.Picture{}, err
	}
	currentOffset += 4

	mimeLength, err := binary.Read[uint32](sr, currentOffset, "MIME type length")
	if err != nil {
		return types.Picture{}, err
	}
	currentOffset += 4

	mimeData := make([]byte, mimeLength)
	if err := sr.ReadAt(mimeData, currentOffset, "MIME type"); err != nil {
		return types.Picture{}, err
	}
	currentOffset += int64(mimeLength)

	descLength, err := binary.Read[uint32](sr, currentOffset, "description length")
	if err != nil {
		return types.Picture{}, err
	}
	currentOffset += 4

	descData := make([]byte, descLength)
	if descLength > 0 {
		if err := sr.ReadAt(descData, currentOffset, "description"); err != nil {
			return types.Picture{}, err
		}
	}
	currentOffset += int64(descLength)

	width, err := binary.Read[uint32](sr, currentOffset, "width")
	if err != nil {
		return types.Picture{}, err
	}
	currentOffset += 4

	height, err := binary.Read[uint32](sr, currentOffset, "height")
	if err != nil {
		return types.Picture{}, err
	}
	currentOffset += 4

	currentOffset += 8 // color depth, indexed colors

	dataLength, err := binary.Read[uint32](sr, currentOffset, "picture data length")
	if err != nil {
		return types.Picture{}, err
	}
	currentOffset += 4

	pictureData := make([]byte, dataLength)
	if err := sr.ReadAt(pictureData, currentOffset, "picture data"); err != nil {
		return types.Picture{}, err
	}

	return types.Picture{
		Type:        types.PictureType(pictureType),
		MIME:        string(mimeData),
		Description: string(descData),
		Data:        pictureData,
		Width:       int(width),
		Height:      int(height),
	}, nil
}

func parseApplication(sr *binary.SafeReader, offset, blockLength int64) (uint32, []byte, error) {
	id, err := binary.Read[uint32](sr, offset, "application id")
	if err != nil {
		return 0, nil, err
	}

	dataLen := blockLength - 4
	if dataLen < 0 {
		return 0, nil, fmt.Errorf("APPLICATION block shorter than its id field")
	}
	data := make([]byte, dataLen)
	if dataLen > 0 {
		if err := sr.ReadAt(data, offset+4, "application data"); err != nil {
			return 0, nil, err
		}
	}
	return id, data, nil
}
