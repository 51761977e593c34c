// Package cache provides the serialization codecs used to store models in
// the key-value cache. Backends live in the subpackages memory, badger,
// and redis; any implementation of geodata.KeyValueCache works.
package cache

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec defines the serialization contract for cached models.
type Codec interface {
	// Encode serializes a model to bytes.
	Encode(v any) ([]byte, error)

	// Decode deserializes bytes into a model.
	Decode(data []byte, v any) error

	// Name returns the codec identifier (e.g., "json", "msgpack").
	Name() string
}

// CodecName constants.
const (
	CodecNameJSON    = "json"
	CodecNameMsgpack = "msgpack"
)

// GetCodec returns a codec by name. Defaults to JSON.
func GetCodec(name string) Codec {
	switch name {
	case CodecNameMsgpack:
		return &MsgpackCodec{}
	case CodecNameJSON, "":
		return &JSONCodec{}
	default:
		return &JSONCodec{}
	}
}

// JSONCodec encodes/decodes cached models as JSON.
type JSONCodec struct{}

func (c *JSONCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (c *JSONCodec) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

func (c *JSONCodec) Name() string { return CodecNameJSON }

// MsgpackCodec encodes/decodes cached models as MessagePack. Denser than
// JSON; preferred for tile-heavy caches.
type MsgpackCodec struct{}

func (c *MsgpackCodec) Encode(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (c *MsgpackCodec) Decode(data []byte, v any) error { return msgpack.Unmarshal(data, v) }

func (c *MsgpackCodec) Name() string { return CodecNameMsgpack }
