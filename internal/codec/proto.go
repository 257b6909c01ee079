package codec

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Proto encodes cache values as a protobuf Struct-family Value. Denser than
// JSON and cheap to decode, at the cost of store-side readability.
//
// structpb accepts the JSON-like shapes the engine emits; typed slices that
// passed through the engine untouched (e.g. []int) must be encoded with the
// JSON codec instead.
type Proto struct{}

func (Proto) Name() string { return "proto" }

func (Proto) Encode(v any) ([]byte, error) {
	pv, err := structpb.NewValue(v)
	if err != nil {
		return nil, fmt.Errorf("proto encode: %w", err)
	}
	return proto.Marshal(pv)
}

func (Proto) Decode(data []byte) (any, error) {
	var pv structpb.Value
	if err := proto.Unmarshal(data, &pv); err != nil {
		return nil, fmt.Errorf("proto decode: %w", err)
	}
	return pv.AsInterface(), nil
}

var _ Codec = Proto{}
