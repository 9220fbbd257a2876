package codec

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned by Limit when a blob exceeds its bound.
var ErrTooLarge = errors.New("codec: payload too large")

// Limit wraps another codec to bound blob sizes in both directions.
// A bound <= 0 disables that side.
//
// Typical use: refuse oversized values before they reach a fixed-capacity
// buffer, and refuse oversized blobs read back from an untrusted snapshot.
type Limit[V any] struct {
	// Inner is the wrapped codec. It must be set.
	Inner Codec[V]
	// MaxEncode bounds the blob produced by Encode.
	MaxEncode int
	// MaxDecode bounds the blob accepted by Decode; Inner is not called past it.
	MaxDecode int
}

var _ Codec[struct{}] = Limit[struct{}]{}

func (c Limit[V]) Name() string { return c.Inner.Name() }

func (c Limit[V]) Encode(v V) ([]byte, error) {
	b, err := c.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if c.MaxEncode > 0 && len(b) > c.MaxEncode {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxEncode)
	}
	return b, nil
}

func (c Limit[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("%w: %d > %d", ErrTooLarge, len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
