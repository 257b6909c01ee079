// Package codec turns cache values into store payloads and back.
//
// Inputs are the plain shapes the deconstruction engine guarantees: nil,
// booleans, numbers, strings, and ordered sequences or string-keyed maps of
// those. Both codecs normalize numbers on decode (integers come back as
// float64), which is fine for cache values — the reconstruction layer owns
// coercion back into schema types.
package codec

import "fmt"

// Codec encodes and decodes cache values.
type Codec interface {
	// Name identifies the codec in config files and diagnostics.
	Name() string
	Encode(v any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON{}, nil
	case "proto":
		return Proto{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}
