// Package codec holds payload codecs: serializers for values that are not
// fixed-layout (pointers, strings, slices, maps inside structs) and so cannot
// be copied as raw memory. binser.Payload carries their output inside a
// buffer as a length-prefixed blob.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	// Name identifies the encoding in errors and logs, e.g. "cbor".
	Name() string
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
