package binser

import (
	"fmt"

	"github.com/unkn0wn-root/binser/codec"
)

// Payload carries values that are not fixed-layout. V is encoded with c and
// the result is written as a count followed by the blob; decode hands
// exactly that blob back to c.
//
//	users := binser.Slice(binser.Payload[User](codec.Msgpack[User]{}))
func Payload[V any](c codec.Codec[V]) Coder[V] {
	if c == nil {
		panic("binser: payload codec can't be nil")
	}
	return payloadCoder[V]{c: c}
}

type payloadCoder[V any] struct {
	c codec.Codec[V]
}

func (p payloadCoder[V]) Encode(s *Serializer, v V) error {
	b, err := p.c.Encode(v)
	if err != nil {
		return fmt.Errorf("binser: %s encode: %w", p.c.Name(), err)
	}
	return Bytes().Encode(s, b)
}

func (p payloadCoder[V]) Decode(s *Serializer, out *V) error {
	b, err := readBlob(s)
	if err != nil {
		return err
	}
	v, err := p.c.Decode(b)
	if err != nil {
		return fmt.Errorf("binser: %s decode: %w", p.c.Name(), err)
	}
	*out = v
	return nil
}
