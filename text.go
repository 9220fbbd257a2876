package binser

import (
	"bytes"
	"fmt"
)

// String encodes a count followed by the string's bytes. Decode replaces *out.
func String() Coder[string] { return stringCoder{} }

type stringCoder struct{}

func (stringCoder) Encode(s *Serializer, v string) error {
	if err := WriteLen(s, len(v)); err != nil {
		return err
	}
	return s.st.Append([]byte(v))
}

func (stringCoder) Decode(s *Serializer, out *string) error {
	b, err := readBlob(s)
	if err != nil {
		return err
	}
	*out = string(b)
	return nil
}

// Bytes encodes a count followed by the raw bytes. Decode replaces *out.
func Bytes() Coder[[]byte] { return bytesCoder{} }

type bytesCoder struct{}

func (bytesCoder) Encode(s *Serializer, v []byte) error {
	if err := WriteLen(s, len(v)); err != nil {
		return err
	}
	return s.st.Append(v)
}

func (bytesCoder) Decode(s *Serializer, out *[]byte) error {
	b, err := readBlob(s)
	if err != nil {
		return err
	}
	*out = b
	return nil
}

// readBlob reads a count and that many bytes into a fresh slice. A count
// larger than the whole payload fails before anything is allocated.
func readBlob(s *Serializer) ([]byte, error) {
	n, err := ReadLen(s)
	if err != nil {
		return nil, err
	}
	if n > s.Len() {
		return nil, &RangeError{Op: "consume", Available: s.Remaining(), Requested: n, Err: ErrOutOfData}
	}
	b := make([]byte, n)
	if err := s.st.Consume(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteString is String().Encode.
func WriteString(s *Serializer, v string) error { return stringCoder{}.Encode(s, v) }

// ReadString is String().Decode.
func ReadString(s *Serializer, out *string) error { return stringCoder{}.Decode(s, out) }

// WriteCString writes NUL-terminated text: the bytes before the first NUL
// (or all of str when it has none), as a count followed by the bytes. The
// terminator itself is not written.
func WriteCString(s *Serializer, str []byte) error {
	if i := bytes.IndexByte(str, 0); i >= 0 {
		str = str[:i]
	}
	if err := WriteLen(s, len(str)); err != nil {
		return err
	}
	return s.st.Append(str)
}

// ReadCString reads text written by WriteCString into dst and returns its
// length. dst must be non-nil and hold at least that many bytes; when room
// is left a NUL terminator follows the text.
func ReadCString(s *Serializer, dst []byte) (int, error) {
	if dst == nil {
		return 0, ErrNilDestination
	}
	n, err := ReadLen(s)
	if err != nil {
		return 0, err
	}
	if n > len(dst) {
		return 0, fmt.Errorf("%w: text of %d bytes, destination holds %d", ErrShortDestination, n, len(dst))
	}
	if err := s.st.Consume(dst[:n]); err != nil {
		return 0, err
	}
	if n < len(dst) {
		dst[n] = 0
	}
	return n, nil
}
