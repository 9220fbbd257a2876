package codec

// Bytes is an identity codec for []byte values. Encode/Decode return the
// input unchanged; Decode's result aliases the blob it was given.
type Bytes struct{}

var _ Codec[[]byte] = Bytes{}

func (Bytes) Name() string                    { return "bytes" }
func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }

// String is a trivial codec for Go string values. By convention this
// assumes UTF-8 and performs no validation.
type String struct{}

var _ Codec[string] = String{}

func (String) Name() string                    { return "string" }
func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }
