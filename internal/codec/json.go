package codec

import "encoding/json"

// JSON encodes cache values as JSON. The default codec: payloads stay
// readable in the store, at the cost of size.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSON) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

var _ Codec = JSON{}
