package codec

import "google.golang.org/protobuf/proto"

// Protobuf encodes proto messages in the binary wire format.
// Construct with NewProtobuf; the constructor allocates the message that
// Decode fills, e.g. NewProtobuf(func() *mypb.User { return &mypb.User{} }).
type Protobuf[T proto.Message] struct {
	new  func() T
	opts proto.MarshalOptions
}

// NewProtobuf returns a codec producing deterministic output, so equal
// messages encode to equal blobs.
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	if ctor == nil {
		panic("codec: protobuf constructor can't be nil")
	}
	return Protobuf[T]{new: ctor, opts: proto.MarshalOptions{Deterministic: true}}
}

func (Protobuf[T]) Name() string { return "protobuf" }

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return c.opts.Marshal(v)
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	err := proto.Unmarshal(b, m)
	return m, err
}
