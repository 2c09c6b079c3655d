package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

// createMinimalFLAC creates a minimal FLAC file with STREAMINFO and VORBIS_COMMENT blocks.
func createMinimalFLAC(title, artist, album string) []byte {
	buf := &bytes.Buffer{}

	buf.WriteString("fLaC")

	// STREAMINFO block (block type 0, not last)
	buf.WriteByte(0x00)
	buf.WriteByte(0x00)
	buf.WriteByte(0x00)
	buf.WriteByte(0x22) // 34 bytes

	binary.Write(buf, binary.BigEndian, uint16(4096))
	binary.Write(buf, binary.BigEndian, uint16(4096))
	buf.Write(make([]byte, 3)) // min frame size
	buf.Write(make([]byte, 3)) // max frame size

	sampleRate := uint64(44100)
	channels := uint64(1)      // stored as channels-1
	bitsPerSample := uint64(15) // stored as bits-1
	totalSamples := uint64(44100)

	packed := (sampleRate << 44) | (channels << 41) | (bitsPerSample << 36) | totalSamples
	binary.Write(buf, binary.BigEndian, packed)

	buf.Write(make([]byte, 16)) // MD5

	// VORBIS_COMMENT block (block type 4, last)
	buf.WriteByte(0x84)

	commentData := &bytes.Buffer{}
	vendor := "flacscan"
	binary.Write(commentData, binary.LittleEndian, uint32(len(vendor)))
	commentData.WriteString(vendor)

	var comments []string
	if title != "" {
		comments = append(comments, "TITLE="+title)
	}
	if artist != "" {
		comments = append(comments, "ARTIST="+artist)
	}
	if album != "" {
		comments = append(comments, "ALBUM="+album)
	}

	binary.Write(commentData, binary.LittleEndian, uint32(len(comments)))
	for _, comment := range comments {
		binary.Write(commentData, binary.LittleEndian, uint32(len(comment)))
		commentData.WriteString(comment)
	}

	commentLen := commentData.Len()
	buf.WriteByte(byte((commentLen >> 16) & 0xFF))
	buf.WriteByte(byte((commentLen >> 8) & 0xFF))
	buf.WriteByte(byte(commentLen & 0xFF))
	buf.Write(commentData.Bytes())

	return buf.Bytes()
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "test*.flac")
	require.NoError(t, err)
	_, err = tmpFile.Write(data)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

func TestScan_Success(t *testing.T) {
	path := writeTemp(t, createMinimalFLAC("Test Song", "Test Artist", "Test Album"))

	result, err := Scanner{}.Scan(path)
	require.NoError(t, err)

	require.Equal(t, "Test Song", result.Tags.GetString("TITLE"))
	require.Equal(t, "Test Artist", result.Tags.GetString("ARTIST"))
	require.Equal(t, "Test Album", result.Tags.GetString("ALBUM"))

	require.Equal(t, 44100, result.Info.SampleRate)
	require.Equal(t, 2, result.Info.Channels)
	require.Equal(t, 16, result.Info.BitsPerSample)
	require.InDelta(t, 1.0, result.Info.DurationSeconds, 1e-6)
}

func TestScan_InvalidMagic(t *testing.T) {
	path := writeTemp(t, []byte("INVALID"))

	_, err := Scanner{}.Scan(path)
	require.Error(t, err)

	var corrupted *types.CorruptedFileError
	require.True(t, errors.As(err, &corrupted))
}

func TestScan_NoPictures(t *testing.T) {
	path := writeTemp(t, createMinimalFLAC("Test", "Artist", "Album"))

	result, err := Scanner{}.Scan(path)
	require.NoError(t, err)
	require.Empty(t, result.Pictures)
}

func TestScan_EmptyTags(t *testing.T) {
	path := writeTemp(t, createMinimalFLAC("", "", ""))

	result, err := Scanner{}.Scan(path)
	require.NoError(t, err)
	require.False(t, result.Tags.Has("TITLE"))
	require.False(t, result.Tags.Has("ARTIST"))
	require.False(t, result.Tags.Has("ALBUM"))
}

func BenchmarkScan(b *testing.B) {
	data := createMinimalFLAC("Benchmark Song", "Benchmark Artist", "Benchmark Album")
	tmpFile, err := os.CreateTemp(b.TempDir(), "bench*.flac")
	if err != nil {
		b.Fatal(err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		b.Fatal(err)
	}
	path := tmpFile.Name()
	tmpFile.Close()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := (Scanner{}).Scan(path); err != nil {
			b.Fatal(err)
		}
	}
}
