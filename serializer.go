package binser

import (
	"fmt"
	"math"
	"unsafe"
)

// Serializer writes values into a Storage and reads them back in the same
// order. It holds no state of its own beyond the backend's cursors:
// decoding is correct only when reads repeat the writes' types and order.
type Serializer struct {
	st Storage
}

// New returns a Serializer over st. The Serializer takes ownership of st.
func New(st Storage) *Serializer {
	if st == nil {
		panic("binser: storage can't be nil")
	}
	return &Serializer{st: st}
}

func (s *Serializer) Storage() Storage { return s.st }
func (s *Serializer) Len() int         { return s.st.Len() }
func (s *Serializer) Remaining() int   { return s.st.Remaining() }
func (s *Serializer) Bytes() []byte    { return s.st.Bytes() }
func (s *Serializer) Rewind()          { s.st.Rewind() }
func (s *Serializer) Reset()           { s.st.Reset() }

// Clone returns a Serializer over a deep copy of the backend, rewound for reading.
func (s *Serializer) Clone() *Serializer { return &Serializer{st: s.st.Clone()} }

func (s *Serializer) SaveFile(path string) error { return SaveFile(path, s.st) }
func (s *Serializer) LoadFile(path string) error { return LoadFile(path, s.st) }

// Scalar is the set of types whose values are copied as raw memory with no
// runtime check. Structs and arrays of scalars go through Pod instead.
type Scalar interface {
	~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 |
		~complex64 | ~complex128
}

// raw views *v as its unsafe.Sizeof bytes.
func raw[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

// Write appends the in-memory representation of v.
func Write[T Scalar](s *Serializer, v T) error {
	return s.st.Append(raw(&v))
}

// Read fills *out with the next unsafe.Sizeof(T) bytes.
func Read[T Scalar](s *Serializer, out *T) error {
	if out == nil {
		return ErrNilDestination
	}
	return s.st.Consume(raw(out))
}

// WriteLen writes a container element count as an unsigned 64-bit value.
func WriteLen(s *Serializer, n int) error {
	if n < 0 {
		panic("binser: negative length")
	}
	return Write(s, uint64(n))
}

// ReadLen reads a count written by WriteLen.
func ReadLen(s *Serializer) (int, error) {
	var n uint64
	if err := Read(s, &n); err != nil {
		return 0, err
	}
	if n > math.MaxInt {
		return 0, fmt.Errorf("%w: length %d", ErrCorrupt, n)
	}
	return int(n), nil
}

// hint bounds a decoded count before it is used as an allocation size.
func hint(s *Serializer, n int) int {
	return min(n, s.Remaining())
}
