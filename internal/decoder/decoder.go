// Package decoder implements the cache value decode pipeline: the key
// convention selects a decompressor and a deserializer, and the raw
// bytes flow through both in order.
//
// Package decoder 实现缓存值的解码流水线：键命名约定选择解压器和
// 反序列化器，原始字节依次流经二者。
//
// Decode is a pure function over (key, raw): it never talks to the
// store, never mutates its input and always classifies a failure as
// belonging to exactly one stage. An operator debugging a misnamed key
// must be able to tell "wrong compression guessed" from "wrong format
// guessed".
package decoder

import (
	"github.com/Humphrey-He/cacheview/api/codec"
	"github.com/Humphrey-He/cacheview/api/core"
	"github.com/Humphrey-He/cacheview/internal/compress"
	"github.com/Humphrey-He/cacheview/internal/serialize"
)

// Decoder decodes raw cache values into generic mappings. The zero
// value is ready to use; Decoder holds no state and is safe for
// concurrent use.
type Decoder struct{}

// New returns a Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode classifies key, decompresses raw with the selected algorithm
// and deserializes the result with the selected format.
//
// On decompression failure it returns a *core.DecompressError and
// never attempts deserialization; on deserialization failure it
// returns a *core.DeserializeError. The input slice is not modified.
//
// Parameters:
//   - key: The cache key, carrying the codec convention
//   - raw: The raw bytes fetched from the store
//
// Returns:
//   - codec.GenericValue: The decoded mapping
//   - error: A stage-classified error on failure
func (d *Decoder) Decode(key string, raw []byte) (codec.GenericValue, error) {
	alg, format := codec.Classify(key)
	return d.DecodeAs(raw, alg, format)
}

// DecodeAs runs the pipeline with an explicit algorithm and format,
// bypassing the key convention. This is the re-run path an operator
// uses when a key's prefix is suspected to be wrong.
//
// Parameters:
//   - raw: The raw bytes fetched from the store
//   - alg: The compression algorithm to decompress with
//   - format: The serialization format to deserialize with
//
// Returns:
//   - codec.GenericValue: The decoded mapping
//   - error: A stage-classified error on failure
func (d *Decoder) DecodeAs(raw []byte, alg codec.CompressionAlgorithm, format codec.SerializationFormat) (codec.GenericValue, error) {
	dec := compress.ForAlgorithm(alg)
	plain, err := dec.Decompress(raw)
	if err != nil {
		return nil, &core.DecompressError{Algorithm: dec.Name(), Err: err}
	}

	deser := serialize.ForFormat(format)
	value, err := deser.Deserialize(plain)
	if err != nil {
		return nil, &core.DeserializeError{Format: deser.Name(), Err: err}
	}
	return value, nil
}
