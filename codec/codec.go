// Package codec defines the value serialization contract used around the
// distributed cache accessor. The accessor itself never encodes or decodes;
// it only carries the codec so the caller can serialize values for the
// backend using the same handle it gates calls with.
package codec

// Codec encodes/decodes values V to []byte for backend storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
