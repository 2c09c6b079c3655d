package tagmap

import (
	"math"
	"strconv"

	"github.com/wavepath/flacscan/internal/types"
)

// InjectInfo projects container-level stream info into tm's canonical info
// fields. Called before Map, so a subsequent TAGVERSION check can trigger
// the ID3 coexistence pass.
func InjectInfo(tm types.TagMap, info types.ContainerInfo) {
	tm.SetInt("SIZE", int(info.SizeBytes))
	tm.Set("SECS", types.String(strconv.FormatFloat(info.DurationSeconds, 'f', -1, 64)))
	tm.SetInt("OFFSET", 0)

	bitrate := 0
	if info.DurationSeconds > 0 {
		bitrate = int(math.Floor(float64(info.SizeBytes*8) / info.DurationSeconds / 1000))
	}
	tm.SetInt("BITRATE", bitrate)

	tm.SetInt("VBR_SCALE", 1)
	tm.SetInt("RATE", info.SampleRate)
	tm.SetInt("SAMPLESIZE", info.BitsPerSample)
	tm.SetInt("CHANNELS", info.Channels)
	tm.Set("LOSSLESS", types.String("true"))

	if info.ID3Version != "" {
		tm.SetString("TAGVERSION", "FLAC, "+info.ID3Version)
	}
}
