// Package serialize provides the deserializer implementations for the
// closed set of serialization formats used by cache producers.
//
// Package serialize 提供缓存生产者使用的序列化格式集合的反序列化实现。
//
// Every deserializer returns a mapping: when the decoded top-level
// value is not itself a mapping it is wrapped as {"value": v}, so
// downstream consumers always receive a mapping.
//
// 每个反序列化器都返回一个映射：当解码出的顶层值本身不是映射时，
// 会被包装为 {"value": v}，以保证下游消费者总是收到映射。
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Humphrey-He/cacheview/api/codec"
)

// Singleton deserializers. All are stateless.
// 单例反序列化器，均为无状态。
var (
	binaryCodec  = nativeBinary{}
	msgpackCodec = msgPack{}
	jsonCodec    = jsonText{name: "json"}
	goJSONCodec  = jsonText{name: "gojson"}
)

// ForFormat returns the deserializer for the given format. Unknown
// values fall back to the native binary deserializer, matching the
// convention default.
//
// ForFormat 返回给定格式对应的反序列化器。
//
// Parameters:
//   - f: The serialization format
//
// Returns:
//   - codec.Deserializer: The deserializer for the format
func ForFormat(f codec.SerializationFormat) codec.Deserializer {
	switch f {
	case codec.FormatMsgPack:
		return msgpackCodec
	case codec.FormatJSON:
		return jsonCodec
	case codec.FormatGoJSON:
		return goJSONCodec
	default:
		return binaryCodec
	}
}

// normalize applies the mapping rule: a non-mapping top-level value is
// wrapped as a single-entry mapping under the "value" key.
//
// normalize 应用映射规则：非映射的顶层值被包装为 "value" 键下的
// 单条目映射。
func normalize(v any) codec.GenericValue {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return codec.GenericValue{"value": v}
}

// jsonText deserializes plain JSON text. Two formats share this
// implementation: "json" and "gojson" differ only in which producer
// library wrote them, so they carry distinct names for display but
// decode identically.
type jsonText struct {
	name string
}

// Deserialize parses data as a single JSON document. Numbers are kept
// as json.Number so large integers survive the round trip to display.
func (j jsonText) Deserialize(data []byte) (codec.GenericValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	// A value followed by anything but whitespace is not one document.
	if dec.More() {
		return nil, fmt.Errorf("parse json: trailing data after document")
	}
	return normalize(v), nil
}

// Name returns the deserializer name.
func (j jsonText) Name() string {
	return j.name
}

// msgPack deserializes MessagePack-encoded values.
// msgPack 反序列化MessagePack编码的值。
type msgPack struct{}

// Deserialize decodes one MessagePack value.
func (msgPack) Deserialize(data []byte) (codec.GenericValue, error) {
	var v any
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse msgpack: %w", err)
	}
	return normalize(v), nil
}

// Name returns the deserializer name.
func (msgPack) Name() string {
	return "msgpack"
}
