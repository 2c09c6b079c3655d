package prescan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wavepath/flacscan/internal/types"
)

type fakeScanner struct {
	result types.ScanResult
	err    error
}

func (f fakeScanner) Scan(path string) (types.ScanResult, error) { return f.result, f.err }

type fakeCatalog struct {
	records []types.Record
}

func (f *fakeCatalog) UpdateOrCreate(ctx context.Context, rec types.Record) error {
	f.records = append(f.records, rec)
	return nil
}

func flacHeader(streamInfo []byte) []byte {
	block := make([]byte, 4+len(streamInfo))
	block[0] = 0x80 // last-metadata-block flag set, type 0 (STREAMINFO)
	block[1] = byte(len(streamInfo) >> 16)
	block[2] = byte(len(streamInfo) >> 8)
	block[3] = byte(len(streamInfo))
	copy(block[4:], streamInfo)
	return append([]byte("fLaC"), block...)
}

func TestParseStream_RequestsMoreUntilThresholdReached(t *testing.T) {
	p := New(fakeScanner{}, &fakeCatalog{})

	_, ok, err := p.ParseStream(make([]byte, minScanBytes-1), 0)
	require.NoError(t, err)
	require.False(t, ok, "should keep accumulating below minScanBytes")
}

func TestParseStream_ScansOnceThresholdReached(t *testing.T) {
	info := types.ContainerInfo{SampleRate: 44100, Channels: 2, BitsPerSample: 16, DurationSeconds: 5}
	scanner := fakeScanner{result: types.ScanResult{Info: info}}
	p := New(scanner, &fakeCatalog{})

	result, ok, err := p.ParseStream(make([]byte, minScanBytes), 0)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 44100, result.Info.SampleRate)
}

func TestParseStream_ZeroSampleRateIsNotMeaningful(t *testing.T) {
	scanner := fakeScanner{result: types.ScanResult{Info: types.ContainerInfo{}}}
	p := New(scanner, &fakeCatalog{})

	result, ok, err := p.ParseStream(make([]byte, minScanBytes), 0)
	require.NoError(t, err)
	require.False(t, ok)
	require.Zero(t, result)
}

func TestApplyDurationHeuristic_ZeroesDurationWhenBeyondCompressionBound(t *testing.T) {
	result := Result{Info: types.ContainerInfo{
		Channels:        2,
		BitsPerSample:   16,
		SampleRate:      44100,
		DurationSeconds: 3600, // wildly implausible for a 32KB buffer
	}}

	applyDurationHeuristic(&result, minScanBytes, 42, 0)

	require.Zero(t, result.Info.DurationSeconds)
	require.Zero(t, result.AvgBitrate)
}

func TestApplyDurationHeuristic_ComputesAvgBitrateWhenLengthKnown(t *testing.T) {
	result := Result{Info: types.ContainerInfo{
		Channels:        2,
		BitsPerSample:   16,
		SampleRate:      44100,
		DurationSeconds: 0.5,
	}}

	// Plausible: half a second of 16-bit stereo audio stays within an
	// 8:1 compression ratio of the 32KB buffer.
	applyDurationHeuristic(&result, minScanBytes, 42, 5_000_000)

	require.NotZero(t, result.Info.DurationSeconds)
	require.Greater(t, result.AvgBitrate, 0)
}

func TestApplyDurationHeuristic_LeavesBitrateZeroWithoutLength(t *testing.T) {
	result := Result{Info: types.ContainerInfo{
		Channels:        2,
		BitsPerSample:   16,
		SampleRate:      44100,
		DurationSeconds: 0.5,
	}}

	applyDurationHeuristic(&result, minScanBytes, 42, 0)

	require.Zero(t, result.AvgBitrate)
}

func TestScanBitrate_AlwaysDeclinesButReportsToCatalog(t *testing.T) {
	cat := &fakeCatalog{}
	p := New(fakeScanner{}, cat)

	bitrate, err := p.ScanBitrate(context.Background(), "album.flac", types.ContainerInfo{DurationSeconds: 5})
	require.NoError(t, err)
	require.Equal(t, -1, bitrate)
	require.Len(t, cat.records, 1)
	require.Equal(t, "album.flac", cat.records[0].Path)
}

type fakeFrameFinder struct {
	gotPath string
	gotMS   int
}

func (f *fakeFrameFinder) FindFrame(path string, ms int) (int64, error) {
	f.gotPath = path
	f.gotMS = ms
	return 1234, nil
}

func TestFindFrameBoundaries_ConvertsSecondsToWholeMilliseconds(t *testing.T) {
	finder := &fakeFrameFinder{}

	offset, err := FindFrameBoundaries(finder, "album.flac", 12.75)

	require.NoError(t, err)
	require.Equal(t, int64(1234), offset)
	require.Equal(t, "album.flac", finder.gotPath)
	require.Equal(t, 12750, finder.gotMS)
}

func TestAudioOffset_WalksSingleStreamInfoBlock(t *testing.T) {
	data := flacHeader(make([]byte, 34))

	offset := audioOffset(data)

	require.Equal(t, len(data), offset)
}

func TestAudioOffset_NotFlacReturnsZero(t *testing.T) {
	require.Equal(t, 0, audioOffset([]byte("not-a-flac-stream")))
}
