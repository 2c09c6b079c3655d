package binary

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestReadLE(t *testing.T) {
	buf := &bytes.Buffer{}

	// Vorbis comment vendor length: 0x0201 (little-endian) = 513
	binary.Write(buf, binary.LittleEndian, uint16(513))

	// Vorbis comment count: 0x04030201 (little-endian) = 67305985
	binary.Write(buf, binary.LittleEndian, uint32(67305985))

	// oversized comment length field for the uint64 code path
	binary.Write(buf, binary.LittleEndian, uint64(578437695752307201))

	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.flac")

	tests := []struct {
		readFunc func() (uint64, error)
		name     string
		want     uint64
	}{
		{
			name: "vendor length uint16",
			want: 513,
			readFunc: func() (uint64, error) {
				val, err := ReadLE[uint16](sr, 0, "vendor length")
				return uint64(val), err
			},
		},
		{
			name: "comment count uint32",
			want: 67305985,
			readFunc: func() (uint64, error) {
				val, err := ReadLE[uint32](sr, 2, "comment count")
				return uint64(val), err
			},
		},
		{
			name: "uint64 code path",
			want: 578437695752307201,
			readFunc: func() (uint64, error) {
				val, err := ReadLE[uint64](sr, 6, "comment length")
				return uint64(val), err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.readFunc()
			if err != nil {
				t.Fatalf("ReadLE failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadLE() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadLE_Uint8IsEndianIndependent(t *testing.T) {
	data := []byte{0x42}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.flac")

	leByte, err := ReadLE[uint8](sr, 0, "byte")
	if err != nil {
		t.Fatalf("ReadLE uint8 failed: %v", err)
	}
	beByte, err := Read[uint8](sr, 0, "byte")
	if err != nil {
		t.Fatalf("Read uint8 failed: %v", err)
	}

	if leByte != 0x42 || beByte != 0x42 {
		t.Errorf("uint8 values should be 0x42, got LE=%d, BE=%d", leByte, beByte)
	}
}

func TestReadLE_VendorLengthDiffersFromBigEndianRead(t *testing.T) {
	// A block header parsed with Read (big-endian) and a Vorbis comment
	// vendor length parsed with ReadLE over the same bytes must disagree
	// whenever the bytes aren't a palindrome, or the two-field split in
	// internal/flac's Vorbis comment parser would silently read garbage.
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(26))
	data := buf.Bytes()
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.flac")

	le, err := ReadLE[uint32](sr, 0, "vendor length")
	if err != nil {
		t.Fatalf("ReadLE failed: %v", err)
	}
	be, err := Read[uint32](sr, 0, "vendor length")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if le != 26 {
		t.Errorf("ReadLE = %d, want 26", le)
	}
	if be == le {
		t.Errorf("expected big-endian interpretation to differ from little-endian, both got %d", le)
	}
}

func BenchmarkReadLE_Uint32(b *testing.B) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	sr := NewSafeReader(bytes.NewReader(data), int64(len(data)), "bench.flac")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ReadLE[uint32](sr, 0, "comment length")
	}
}
