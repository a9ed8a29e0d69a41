package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// MsgPack is a binary codec backed by github.com/vmihailenco/msgpack/v5.
//
// Struct fields are keyed by their json tag so records share one schema with
// the JSON codecs.
type MsgPack struct{}

// Marshal encodes the value to msgpack.
func (MsgPack) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	enc.UseCompactInts(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes the msgpack data into v.
func (MsgPack) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// Name returns the unique name of the codec ("msgpack").
func (MsgPack) Name() string { return "msgpack" }
