// Package codec wraps the two wire formats the normalization engine's
// demo entrypoint reads and writes: JSON for human-editable batches and
// reports, and MessagePack for the compact form a caller might pipe
// between services.
package codec

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects which wire encoding Marshal/Unmarshal use.
type Format string

const (
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// Marshal encodes v in the given format.
func Marshal(format Format, v any) ([]byte, error) {
	switch format {
	case MsgPack:
		return msgpack.Marshal(v)
	default:
		return json.Marshal(v)
	}
}

// Unmarshal decodes data into v according to the given format.
func Unmarshal(format Format, data []byte, v any) error {
	switch format {
	case MsgPack:
		return msgpack.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// DetectFormat guesses the wire format from a file extension (without
// the leading dot), defaulting to JSON for anything unrecognized.
func DetectFormat(ext string) Format {
	if ext == "msgpack" || ext == "mp" {
		return MsgPack
	}
	return JSON
}
