package binser

import (
	"fmt"
	"reflect"
	"sync"
)

// Coder encodes one T into a Serializer and decodes it back. Coders compose:
// container coders take the coder of their elements, so nested types such as
// map[string][]int32 are built as Map(String(), Slice(Value[int32]())).
//
// Decode writes into *out. Container coders add to an existing container
// rather than replacing it, matching the way their elements are read.
type Coder[T any] interface {
	Encode(s *Serializer, v T) error
	Decode(s *Serializer, out *T) error
}

// CoderFunc builds a Coder from a pair of functions.
func CoderFunc[T any](enc func(*Serializer, T) error, dec func(*Serializer, *T) error) Coder[T] {
	return coderFunc[T]{enc: enc, dec: dec}
}

type coderFunc[T any] struct {
	enc func(*Serializer, T) error
	dec func(*Serializer, *T) error
}

func (c coderFunc[T]) Encode(s *Serializer, v T) error    { return c.enc(s, v) }
func (c coderFunc[T]) Decode(s *Serializer, out *T) error { return c.dec(s, out) }

// Value is the Coder for a scalar type.
func Value[T Scalar]() Coder[T] { return scalarCoder[T]{} }

type scalarCoder[T Scalar] struct{}

func (scalarCoder[T]) Encode(s *Serializer, v T) error    { return Write(s, v) }
func (scalarCoder[T]) Decode(s *Serializer, out *T) error { return Read(s, out) }

// Pod returns a raw-memory Coder for a struct or array type built only from
// scalars. Any pointer, slice, map, string, interface, channel, func or
// unsafe.Pointer anywhere in T's layout fails with ErrNotTrivial.
func Pod[T any]() (Coder[T], error) {
	if err := checkLayout(reflect.TypeFor[T]()); err != nil {
		return nil, err
	}
	return podCoder[T]{}, nil
}

// MustPod is like Pod but panics on error.
// Handy for package-level coder variables.
func MustPod[T any]() Coder[T] {
	c, err := Pod[T]()
	if err != nil {
		panic(err)
	}
	return c
}

type podCoder[T any] struct{}

func (podCoder[T]) Encode(s *Serializer, v T) error { return s.st.Append(raw(&v)) }
func (podCoder[T]) Decode(s *Serializer, out *T) error {
	if out == nil {
		return ErrNilDestination
	}
	return s.st.Consume(raw(out))
}

// WritePod writes v's raw memory after checking T's layout.
// The check runs once per type and is cached.
func WritePod[T any](s *Serializer, v T) error {
	if err := checkLayout(reflect.TypeFor[T]()); err != nil {
		return err
	}
	return podCoder[T]{}.Encode(s, v)
}

// ReadPod is the read side of WritePod.
func ReadPod[T any](s *Serializer, out *T) error {
	if err := checkLayout(reflect.TypeFor[T]()); err != nil {
		return err
	}
	return podCoder[T]{}.Decode(s, out)
}

var layouts sync.Map // reflect.Type -> error (nil for fixed layout)

func checkLayout(t reflect.Type) error {
	if v, ok := layouts.Load(t); ok {
		err, _ := v.(error)
		return err
	}
	var err error
	if path, ok := fixedLayout(t, t.String()); !ok {
		err = fmt.Errorf("%w: %s", ErrNotTrivial, path)
	}
	layouts.Store(t, err)
	return err
}

// fixedLayout reports whether t holds no indirection. On failure it returns
// the path to the first offending component.
func fixedLayout(t reflect.Type, path string) (string, bool) {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return "", true
	case reflect.Array:
		return fixedLayout(t.Elem(), path+"[]")
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if p, ok := fixedLayout(f.Type, path+"."+f.Name); !ok {
				return p, false
			}
		}
		return "", true
	}
	return fmt.Sprintf("%s (%s)", path, t.Kind()), false
}

// Array encodes exactly n elements with no count prefix.
// Encoding a slice of any other length fails with ErrLengthMismatch.
// For arrays of scalars, Pod[[N]T] gives the same bytes in one copy.
func Array[T any](n int, elem Coder[T]) Coder[[]T] {
	if n < 0 {
		panic("binser: array length can't be < 0")
	}
	return CoderFunc(
		func(s *Serializer, v []T) error {
			if len(v) != n {
				return fmt.Errorf("%w: array of %d, got %d", ErrLengthMismatch, n, len(v))
			}
			for i := range v {
				if err := elem.Encode(s, v[i]); err != nil {
					return err
				}
			}
			return nil
		},
		func(s *Serializer, out *[]T) error {
			if len(*out) != n {
				*out = make([]T, n)
			}
			for i := range *out {
				if err := elem.Decode(s, &(*out)[i]); err != nil {
					return err
				}
			}
			return nil
		},
	)
}

// Slice encodes a count followed by each element in index order.
// Decode appends the decoded elements to *out.
func Slice[T any](elem Coder[T]) Coder[[]T] {
	return CoderFunc(
		func(s *Serializer, v []T) error { return encodeAll(s, elem, v) },
		func(s *Serializer, out *[]T) error {
			n, err := ReadLen(s)
			if err != nil {
				return err
			}
			if *out == nil {
				*out = make([]T, 0, hint(s, n))
			}
			for range n {
				var e T
				if err := elem.Decode(s, &e); err != nil {
					return err
				}
				*out = append(*out, e)
			}
			return nil
		},
	)
}
