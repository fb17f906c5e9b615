// Package codec defines how cache keys and values are turned into the bytes
// stored in the snapshot file, and back. A codec must round-trip: Decode of
// an Encode output reproduces an equivalent value.
package codec

// Codec encodes/decodes values V to []byte for persistence.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
