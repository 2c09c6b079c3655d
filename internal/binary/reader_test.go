package binary

import (
	"encoding/binary"
	"io"
	"strings"
	"testing"
)

// mockReader implements io.ReaderAt over an in-memory buffer, standing in
// for the *os.File the flac scanner opens.
type mockReader struct {
	data []byte
}

func (m *mockReader) ReadAt(p []byte, off int64) (n int, err error) {
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestSafeReader_ReadAt_Success(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	buf := make([]byte, 2)
	err := sr.ReadAt(buf, 0, "test read")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buf[0] != 0x01 || buf[1] != 0x02 {
		t.Errorf("expected [0x01, 0x02], got [0x%02x, 0x%02x]", buf[0], buf[1])
	}
}

func TestSafeReader_ReadAt_OutOfBounds(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	buf := make([]byte, 2)
	err := sr.ReadAt(buf, 10, "STREAMINFO min block size")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	errMsg := err.Error()
	if !strings.Contains(errMsg, "test.flac") {
		t.Errorf("error should contain filename: %v", errMsg)
	}
	if !strings.Contains(errMsg, "STREAMINFO min block size") {
		t.Errorf("error should contain context: %v", errMsg)
	}
}

func TestSafeReader_ReadAt_ReadWouldExceedSize(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	buf := make([]byte, 4)
	err := sr.ReadAt(buf, 2, "trailing field")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRead_Uint8(t *testing.T) {
	data := []byte{0x42}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	val, err := Read[uint8](sr, 0, "cuesheet track count")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x42 {
		t.Errorf("expected 0x42, got 0x%02x", val)
	}
}

func TestRead_Uint16(t *testing.T) {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, 0x1234)
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	val, err := Read[uint16](sr, 0, "block length high bits")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x1234 {
		t.Errorf("expected 0x1234, got 0x%04x", val)
	}
}

func TestRead_Uint32(t *testing.T) {
	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, 0x12345678)
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	val, err := Read[uint32](sr, 0, "PICTURE mime length")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x12345678 {
		t.Errorf("expected 0x12345678, got 0x%08x", val)
	}
}

func TestRead_Uint64(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, 0x123456789ABCDEF0)
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "test.flac")

	val, err := Read[uint64](sr, 0, "cuesheet lead-in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if val != 0x123456789ABCDEF0 {
		t.Errorf("expected 0x123456789ABCDEF0, got 0x%016x", val)
	}
}

func TestRead_OutOfBoundsPropagatesFileAndField(t *testing.T) {
	data := []byte{0x01, 0x02}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "short.flac")

	_, err := Read[uint32](sr, 0, "STREAMINFO min block size")
	if err == nil {
		t.Fatal("expected error for 4-byte read on a 2-byte file")
	}
	if !strings.Contains(err.Error(), "short.flac") || !strings.Contains(err.Error(), "STREAMINFO min block size") {
		t.Errorf("error missing context: %v", err)
	}
}

func BenchmarkRead_Uint32(b *testing.B) {
	data := make([]byte, 1024*1024)
	for i := 0; i < len(data); i += 4 {
		binary.BigEndian.PutUint32(data[i:], uint32(i))
	}
	mock := &mockReader{data: data}
	sr := NewSafeReader(mock, int64(len(data)), "bench.flac")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		offset := int64((i % (len(data) / 4)) * 4)
		_, _ = Read[uint32](sr, offset, "benchmark")
	}
}
