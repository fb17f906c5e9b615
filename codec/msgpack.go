package codec

import "github.com/vmihailenco/msgpack/v5"

// Msgpack is a Codec that serializes values using vmihailenco/msgpack/v5.
// The zero value is ready to use.
//
// Msgpack is compact, which keeps the snapshot file (and the serialized
// size the byte limit is enforced against) small. Be mindful of struct tag
// differences vs JSON: the snapshot stores whatever bytes Encode produced,
// so renaming a field without a `msgpack:"fieldName"` tag changes how old
// entries decode on reload.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return msgpack.Marshal(v)
}
func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
