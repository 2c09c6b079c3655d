package flac

import (
	mewkizflac "github.com/mewkiz/flac"
	"github.com/wavepath/flacscan/internal/types"
)

// tryMewkizStreamInfo re-decodes a well-formed, seekable FLAC file's
// STREAMINFO block through mewkiz/flac's validating parser, which walks
// the whole metadata chain and checks internal consistency the
// hand-rolled walker in ScanReader doesn't bother with. Scan prefers this
// result when it succeeds; ScanReader's own decode remains the only
// source of stream-info for callers that hand it a non-file io.ReaderAt.
func tryMewkizStreamInfo(path string) (types.ContainerInfo, bool) {
	stream, err := mewkizflac.ParseFile(path)
	if err != nil {
		return types.ContainerInfo{}, false
	}
	defer stream.Close()

	si := stream.Info
	if si == nil || si.SampleRate == 0 {
		return types.ContainerInfo{}, false
	}

	info := types.ContainerInfo{
		SampleRate:    int(si.SampleRate),
		Channels:      int(si.NChannels),
		BitsPerSample: int(si.BitsPerSample),
	}
	info.DurationSeconds = float64(si.NSamples) / float64(si.SampleRate)
	return info, true
}
