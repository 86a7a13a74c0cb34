package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec marshals plain Go structs as JSON. It registers under the name
// "json", replacing Connect's protobuf JSON codec.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
