package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"
)

func mustDecode(t *testing.T, b []byte) []byte {
	t.Helper()
	p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return p
}

func TestFrameRTEmptyAndNonEmpty(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("hello"),
		{0, 1, 2, 3, 4},
		bytes.Repeat([]byte{0xFF}, 4096),
	}
	for _, payload := range cases {
		enc := Encode(payload)
		if len(enc) != HeaderSize+len(payload) {
			t.Fatalf("frame length: got %d want %d", len(enc), HeaderSize+len(payload))
		}
		if got := mustDecode(t, enc); !bytes.Equal(got, payload) {
			t.Fatalf("payload mismatch: got %x want %x", got, payload)
		}
	}
}

func TestHeaderIsNativeEndianSize(t *testing.T) {
	enc := Encode([]byte("abc"))
	if got := binary.NativeEndian.Uint64(enc[:HeaderSize]); got != 3 {
		t.Fatalf("size field: got %d want 3", got)
	}
}

func TestDecodeRejectsTrailingAndShort(t *testing.T) {
	enc := Encode([]byte("x"))

	trailing := append(append([]byte(nil), enc...), 0xDE, 0xAD)
	if _, err := Decode(trailing); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on trailing bytes, got %v", err)
	}
	if _, err := Decode(enc[:len(enc)-1]); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on truncated payload, got %v", err)
	}
	if _, err := Decode(enc[:3]); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt on truncated header, got %v", err)
	}
}

func TestDecodeHugeSizeField(t *testing.T) {
	b := make([]byte, HeaderSize+2)
	binary.NativeEndian.PutUint64(b, math.MaxUint64)
	if _, err := Decode(b); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("stream payload")

	n, err := WriteFrame(&buf, payload)
	if err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if n != int64(HeaderSize+len(payload)) {
		t.Fatalf("written: got %d want %d", n, HeaderSize+len(payload))
	}
	if !bytes.Equal(buf.Bytes(), Encode(payload)) {
		t.Fatalf("stream and slice encodings differ")
	}

	size, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	got := make([]byte, size)
	if err := ReadPayload(&buf, got); err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload mismatch: got %q", got)
	}
}

func TestReadHeaderErrors(t *testing.T) {
	if _, err := ReadHeader(bytes.NewReader(nil)); !errors.Is(err, io.EOF) {
		t.Fatalf("empty stream: expected io.EOF, got %v", err)
	}
	if _, err := ReadHeader(bytes.NewReader([]byte{1, 2})); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("short header: expected ErrCorrupt, got %v", err)
	}

	var hdr [HeaderSize]byte
	binary.NativeEndian.PutUint64(hdr[:], math.MaxUint64)
	if _, err := ReadHeader(bytes.NewReader(hdr[:])); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("oversized header: expected ErrCorrupt, got %v", err)
	}
}

func TestReadPayloadShort(t *testing.T) {
	dst := make([]byte, 10)
	if err := ReadPayload(bytes.NewReader([]byte("abc")), dst); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}
