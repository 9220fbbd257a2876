package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// HeaderSize is the length of the physical-size field that precedes every payload.
const HeaderSize = 8

var (
	ErrCorrupt = errors.New("binser: corrupt frame")

	// frames carry the raw in-memory layout, so the size field does too.
	order = binary.NativeEndian
)

// Frame: size(u64 native) | payload(size)
func AppendFrame(dst, payload []byte) []byte {
	dst = order.AppendUint64(dst, uint64(len(payload)))
	return append(dst, payload...)
}

func Encode(payload []byte) []byte {
	return AppendFrame(make([]byte, 0, HeaderSize+len(payload)), payload)
}

// Decode returns the payload of a single frame. The frame must be exactly
// header plus payload; short input and trailing bytes are both corrupt.
func Decode(b []byte) ([]byte, error) {
	if len(b) < HeaderSize {
		return nil, ErrCorrupt
	}
	n := order.Uint64(b[:HeaderSize])
	if n != uint64(len(b)-HeaderSize) { // overflow-safe: compares in uint64
		return nil, ErrCorrupt
	}
	return b[HeaderSize:], nil
}

// WriteFrame writes header and payload to w and returns the bytes written.
func WriteFrame(w io.Writer, payload []byte) (int64, error) {
	var hdr [HeaderSize]byte
	order.PutUint64(hdr[:], uint64(len(payload)))

	n, err := w.Write(hdr[:])
	written := int64(n)
	if err != nil {
		return written, fmt.Errorf("write header: %w", err)
	}
	n, err = w.Write(payload)
	written += int64(n)
	if err != nil {
		return written, fmt.Errorf("write payload: %w", err)
	}
	return written, nil
}

// ReadHeader reads the physical-size field. The caller reads the payload
// itself so it can size its region before the copy.
// A size that does not fit in an int is reported as ErrCorrupt.
func ReadHeader(r io.Reader) (int, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, ErrCorrupt
		}
		return 0, err
	}
	n := order.Uint64(hdr[:])
	if n > math.MaxInt {
		return 0, ErrCorrupt
	}
	return int(n), nil
}

// ReadPayload fills dst from r; a short payload is corrupt.
func ReadPayload(r io.Reader, dst []byte) error {
	if _, err := io.ReadFull(r, dst); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrCorrupt
		}
		return err
	}
	return nil
}
