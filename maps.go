package binser

import (
	"cmp"
	"maps"
	"slices"
)

// Map encodes a count followed by interleaved key/value pairs in Go's map
// iteration order. The order is random per run: two encodings of the same
// map may differ byte-wise while decoding to equal maps. Use SortedMap when
// the bytes must be stable.
//
// Decode inserts into *out, allocating it when nil.
func Map[K comparable, V any](key Coder[K], val Coder[V]) Coder[map[K]V] {
	return CoderFunc(
		func(s *Serializer, m map[K]V) error {
			if err := WriteLen(s, len(m)); err != nil {
				return err
			}
			for k, v := range m {
				if err := encodePair(s, key, val, k, v); err != nil {
					return err
				}
			}
			return nil
		},
		decodeMap(key, val),
	)
}

// SortedMap is Map with keys written in ascending order.
func SortedMap[K cmp.Ordered, V any](key Coder[K], val Coder[V]) Coder[map[K]V] {
	return CoderFunc(
		func(s *Serializer, m map[K]V) error {
			if err := WriteLen(s, len(m)); err != nil {
				return err
			}
			for _, k := range slices.Sorted(maps.Keys(m)) {
				if err := encodePair(s, key, val, k, m[k]); err != nil {
					return err
				}
			}
			return nil
		},
		decodeMap(key, val),
	)
}

func encodePair[K, V any](s *Serializer, key Coder[K], val Coder[V], k K, v V) error {
	if err := key.Encode(s, k); err != nil {
		return err
	}
	return val.Encode(s, v)
}

func decodeMap[K comparable, V any](key Coder[K], val Coder[V]) func(*Serializer, *map[K]V) error {
	return func(s *Serializer, out *map[K]V) error {
		n, err := ReadLen(s)
		if err != nil {
			return err
		}
		if *out == nil {
			*out = make(map[K]V, hint(s, n))
		}
		for range n {
			var (
				k K
				v V
			)
			if err := key.Decode(s, &k); err != nil {
				return err
			}
			if err := val.Decode(s, &v); err != nil {
				return err
			}
			(*out)[k] = v
		}
		return nil
	}
}

// Set is an unordered collection of distinct keys.
type Set[K comparable] map[K]struct{}

// NewSet returns a Set holding keys.
func NewSet[K comparable](keys ...K) Set[K] {
	s := make(Set[K], len(keys))
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

func (s Set[K]) Add(k K)             { s[k] = struct{}{} }
func (s Set[K]) Delete(k K)          { delete(s, k) }
func (s Set[K]) Len() int            { return len(s) }
func (s Set[K]) Keys() []K           { return slices.Collect(maps.Keys(s)) }
func (s Set[K]) Equal(o Set[K]) bool { return maps.Equal(s, o) }

func (s Set[K]) Has(k K) bool {
	_, ok := s[k]
	return ok
}

// SetOf encodes a count followed by each key in iteration order.
// Decode inserts into *out, so duplicates collapse.
func SetOf[K comparable](key Coder[K]) Coder[Set[K]] {
	return CoderFunc(
		func(s *Serializer, set Set[K]) error {
			if err := WriteLen(s, len(set)); err != nil {
				return err
			}
			for k := range set {
				if err := key.Encode(s, k); err != nil {
					return err
				}
			}
			return nil
		},
		decodeSet(key),
	)
}

// SortedSetOf is SetOf with keys written in ascending order.
func SortedSetOf[K cmp.Ordered](key Coder[K]) Coder[Set[K]] {
	return CoderFunc(
		func(s *Serializer, set Set[K]) error {
			if err := WriteLen(s, len(set)); err != nil {
				return err
			}
			for _, k := range slices.Sorted(maps.Keys(set)) {
				if err := key.Encode(s, k); err != nil {
					return err
				}
			}
			return nil
		},
		decodeSet(key),
	)
}

func decodeSet[K comparable](key Coder[K]) func(*Serializer, *Set[K]) error {
	return func(s *Serializer, out *Set[K]) error {
		n, err := ReadLen(s)
		if err != nil {
			return err
		}
		if *out == nil {
			*out = make(Set[K], hint(s, n))
		}
		for range n {
			var k K
			if err := key.Decode(s, &k); err != nil {
				return err
			}
			out.Add(k)
		}
		return nil
	}
}
